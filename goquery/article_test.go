package goquery_test

import (
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArticle(t *testing.T) {
	t.Parallel()

	t.Run("parses a full post page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>My Newsletter</title>
<script type="application/ld+json">
{"headline": "Building Agents", "datePublished": "2025-01-15T10:00:00Z", "author": {"name": "Jane Doe"}}
</script>
</head>
<body>
<div class="post-header">
	<h1 class="post-title">Building Agents</h1>
	<h3 class="subtitle">A practical field guide</h3>
	<a class="post-author" href="/@jane">Jane Doe</a>
</div>
<div class="available-content">
	<div class="body markup">
		<p>See the <a href="https://www.notion.so/workspace/Design-Doc-abc123">design doc</a>
		and this <a href="https://youtube.com/watch?v=dQw4w9WgXcQ">walkthrough</a>.</p>
		<p>Diagram: <a href="https://link.excalidraw.com/l/ABC/DEF#json=xyz">architecture</a></p>
	</div>
</div>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/building-agents")

		require.NoError(t, err)
		assert.Equal(t, "Building Agents", article.Title)
		assert.Equal(t, "A practical field guide", article.Subtitle)
		assert.Equal(t, "Jane Doe", article.Author)
		assert.Equal(t, "2025-01-15T10:00:00Z", article.Date)
		assert.Contains(t, article.ContentHTML, "design doc")
		assert.False(t, article.Paywalled)

		require.Len(t, article.Links, 3)
		assert.Equal(t, "https://www.notion.so/workspace/Design-Doc-abc123", article.Links[0].URL)
		assert.Equal(t, grabdoc.TypeNotion, article.Links[0].ResourceType)
		assert.Equal(t, "design doc", article.Links[0].LinkText)
		assert.Equal(t, grabdoc.TypeYouTube, article.Links[1].ResourceType)
		assert.Equal(t, grabdoc.TypeExcalidraw, article.Links[2].ResourceType)
		assert.Equal(t, "https://link.excalidraw.com/l/ABC/DEF#json=xyz", article.Links[2].URL,
			"excalidraw payload fragment must survive resolution")
	})

	t.Run("prefers the second h1 when the first is the publication name", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1>Jane's Newsletter</h1>
<article><h1>The Actual Post Title</h1><p>Body.</p></article>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/actual-post")

		require.NoError(t, err)
		assert.Equal(t, "The Actual Post Title", article.Title)
	})

	t.Run("falls back to ld+json when selectors find nothing", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{"headline": "Hidden Title", "dateModified": "2025-02-01", "author": [{"name": "First Author"}, {"name": "Second"}]}
</script>
</head>
<body><article><p>Short body.</p></article></body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/hidden")

		require.NoError(t, err)
		assert.Equal(t, "Hidden Title", article.Title)
		assert.Equal(t, "First Author", article.Author)
		assert.Equal(t, "2025-02-01", article.Date, "dateModified stands in when datePublished is absent")
	})

	t.Run("falls back to the first time element for the date", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1 class="post-title">Dated Post</h1>
<time datetime="2025-03-10T08:00:00Z">Mar 10</time>
<article><p>Body.</p></article>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/dated")

		require.NoError(t, err)
		assert.Equal(t, "2025-03-10T08:00:00Z", article.Date)
	})

	t.Run("harvests links from the article body only", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav><a href="https://othersite.com/about">About</a></nav>
<article class="post-content">
	<p><a href="https://example.com/report">the report</a></p>
</article>
<footer><a href="https://twitter.com/jane">Twitter</a></footer>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/links")

		require.NoError(t, err)
		require.Len(t, article.Links, 1)
		assert.Equal(t, "https://example.com/report", article.Links[0].URL)
		assert.Equal(t, grabdoc.TypeExternal, article.Links[0].ResourceType)
	})

	t.Run("resolves relative links and drops duplicates and self references", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<article>
	<p><a href="/p/earlier-post">an earlier post</a></p>
	<p><a href="/p/earlier-post">the same post again</a></p>
	<p><a href="#footnote-1">1</a></p>
	<p><a href="https://jane.substack.com/p/self">this very post</a></p>
	<p><a href="javascript:void(0)">subscribe</a></p>
	<p><a href="https://substackcdn.com/image/fetch/w_1456/photo.png">image</a></p>
</article>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/self")

		require.NoError(t, err)
		require.Len(t, article.Links, 1)
		assert.Equal(t, "https://jane.substack.com/p/earlier-post", article.Links[0].URL)
		assert.Equal(t, "an earlier post", article.Links[0].LinkText)
	})

	t.Run("detects truncated posts as paywalled", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1 class="post-title">Teaser</h1>
<article><p>The first paragraph is free.</p></article>
<div class="truncated-post-cta">Subscribe to keep reading</div>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/teaser")

		require.NoError(t, err)
		assert.True(t, article.Paywalled)
	})

	t.Run("ignores dismissed paywall overlays", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1 class="post-title">Free Post</h1>
<article><p>Everything is here.</p></article>
<div class="paywall-overlay" style="display: none;">Subscribe</div>
</body>
</html>`

		article, err := goquery.ParseArticle(html, "https://jane.substack.com/p/free")

		require.NoError(t, err)
		assert.False(t, article.Paywalled)
	})

	t.Run("fails on an invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseArticle("<html></html>", "://not-a-url")

		require.Error(t, err)
		assert.Equal(t, grabdoc.EINVALID, grabdoc.ErrorCode(err))
	})
}
