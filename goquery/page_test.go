package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/grabdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageMeta(t *testing.T) {
	t.Parallel()

	t.Run("prefers the first h1 over the document title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>example.com - articles</title></head>
<body><h1>How We Scaled Postgres</h1></body>
</html>`

		meta, err := goquery.ParsePageMeta(html)

		require.NoError(t, err)
		assert.Equal(t, "How We Scaled Postgres", meta.Title)
	})

	t.Run("reads author and date from ld+json", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{"headline": "Scaling", "author": {"name": "Sam Chen"}, "datePublished": "2024-11-02"}
</script>
<meta name="author" content="Should Not Win">
</head>
<body><h1>Scaling</h1></body>
</html>`

		meta, err := goquery.ParsePageMeta(html)

		require.NoError(t, err)
		assert.Equal(t, "Sam Chen", meta.Author)
		assert.Equal(t, "2024-11-02", meta.Date)
	})

	t.Run("accepts ld+json wrapped in an array", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
[{"author": [{"name": "Array Author"}], "datePublished": "2024-06-01"}]
</script>
</head>
<body><h1>Post</h1></body>
</html>`

		meta, err := goquery.ParsePageMeta(html)

		require.NoError(t, err)
		assert.Equal(t, "Array Author", meta.Author)
		assert.Equal(t, "2024-06-01", meta.Date)
	})

	t.Run("falls back to OpenGraph and meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="OG Title">
<meta property="article:author" content="OG Author">
<meta property="article:published_time" content="2024-01-20T09:30:00Z">
</head>
<body><p>No headings here.</p></body>
</html>`

		meta, err := goquery.ParsePageMeta(html)

		require.NoError(t, err)
		assert.Equal(t, "OG Title", meta.Title)
		assert.Equal(t, "OG Author", meta.Author)
		assert.Equal(t, "2024-01-20T09:30:00Z", meta.Date)
	})

	t.Run("accepts meta tags keyed by name", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<meta name="author" content="Name Author">
<meta name="date" content="2023-12-01">
</head>
<body><h1>Titled</h1></body>
</html>`

		meta, err := goquery.ParsePageMeta(html)

		require.NoError(t, err)
		assert.Equal(t, "Name Author", meta.Author)
		assert.Equal(t, "2023-12-01", meta.Date)
	})

	t.Run("returns empty fields when nothing is present", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.ParsePageMeta(`<!DOCTYPE html><html><body><p>bare</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, meta.Title)
		assert.Empty(t, meta.Author)
		assert.Empty(t, meta.Date)
	})
}

func TestSelectContent(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("All work and no play makes Jack a dull boy. ", 10)

	t.Run("returns the first substantial content element", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>Home | About | Contact</nav>
<article><p>` + longText + `</p></article>
<footer>Copyright</footer>
</body>
</html>`

		content, err := goquery.SelectContent(html)

		require.NoError(t, err)
		assert.Contains(t, content, "dull boy")
		assert.NotContains(t, content, "Copyright")
	})

	t.Run("skips candidates with too little text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<article><p>Just a stub.</p></article>
<main><p>` + longText + `</p></main>
</body>
</html>`

		content, err := goquery.SelectContent(html)

		require.NoError(t, err)
		assert.Contains(t, content, "dull boy")
		assert.NotContains(t, content, "Just a stub")
	})

	t.Run("falls back to the whole body", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body><div class="random"><p>Unstructured page text.</p></div></body>
</html>`

		content, err := goquery.SelectContent(html)

		require.NoError(t, err)
		assert.Contains(t, content, "Unstructured page text.")
	})

	t.Run("honors class-based content containers", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="entry-content"><p>` + longText + `</p></div>
</body>
</html>`

		content, err := goquery.SelectContent(html)

		require.NoError(t, err)
		assert.Contains(t, content, "dull boy")
	})

	t.Run("excludes sibling markup outside the chosen element", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<main><p>` + longText + `</p></main>
<aside>` + strings.Repeat("sidebar ", 50) + `</aside>
</body>
</html>`

		content, err := goquery.SelectContent(html)

		require.NoError(t, err)
		assert.Contains(t, content, "dull boy")
		assert.NotContains(t, content, "sidebar")
	})
}
