package adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/adapter"
	"github.com/fwojciec/grabdoc/fs"
	"github.com/fwojciec/grabdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var webHTML = `<!DOCTYPE html>
<html>
<head>
<title>A Field Guide to Caches</title>
<meta property="article:published_time" content="2024-06-01T00:00:00Z">
<meta name="author" content="Pat Kim">
</head>
<body>
<nav>Home | About</nav>
<h1>A Field Guide to Caches</h1>
<article>` + strings.Repeat("<p>Caches trade memory for latency, and the bill always arrives.</p>", 10) + `</article>
</body>
</html>`

func failingExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ string) (*grabdoc.ExtractResult, error) {
			return nil, grabdoc.Errorf(grabdoc.EINVALID, "nothing extractable")
		},
	}
}

func TestWeb_Extract_uses_first_successful_extractor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	primary := &mock.Extractor{
		ExtractFn: func(_ string) (*grabdoc.ExtractResult, error) {
			return &grabdoc.ExtractResult{ContentHTML: "<p>main content from primary</p>"}, nil
		},
	}
	var secondaryCalled bool
	secondary := &mock.Extractor{
		ExtractFn: func(_ string) (*grabdoc.ExtractResult, error) {
			secondaryCalled = true
			return &grabdoc.ExtractResult{ContentHTML: "<p>secondary</p>"}, nil
		},
	}
	w := &adapter.Web{
		Fetcher:    fixedFetcher(webHTML),
		Extractors: []grabdoc.Extractor{primary, secondary},
		Converter:  passthroughConverter(),
	}

	result, err := w.Extract(context.Background(), "https://example.com/caches", "", dir)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, secondaryCalled, "fallback extractor must not run when the primary finds content")

	article, err := os.ReadFile(filepath.Join(dir, grabdoc.ArticleFile))
	require.NoError(t, err)
	assert.Contains(t, string(article), "# A Field Guide to Caches")
	assert.Contains(t, string(article), "**Author:** Pat Kim")
	assert.Contains(t, string(article), "main content from primary")
}

func TestWeb_Extract_falls_back_to_selector_chain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := &adapter.Web{
		Fetcher:    fixedFetcher(webHTML),
		Extractors: []grabdoc.Extractor{failingExtractor()},
		Converter:  passthroughConverter(),
	}

	result, err := w.Extract(context.Background(), "https://example.com/caches", "", dir)

	require.NoError(t, err)
	assert.True(t, result.Success)

	meta, err := fs.ReadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, "selector chain", meta.Quality.ExtractionMethod)
	assert.Equal(t, "Pat Kim", meta.Article.Author)
}

func TestWeb_Extract_harvests_no_links(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	linked := strings.Replace(webHTML, "</article>",
		`<a href="https://www.notion.so/doc-abc">doc</a></article>`, 1)
	w := &adapter.Web{
		Fetcher:   fixedFetcher(linked),
		Converter: passthroughConverter(),
	}

	_, err := w.Extract(context.Background(), "https://example.com/caches", "", dir)
	require.NoError(t, err)

	meta, err := fs.ReadMetadata(dir)
	require.NoError(t, err)
	assert.Empty(t, meta.Links, "generic pages must not feed the resource dispatcher")
}

func TestWeb_Extract_fails_when_page_has_no_content(t *testing.T) {
	t.Parallel()

	w := &adapter.Web{
		Fetcher:   fixedFetcher("<html><body></body></html>"),
		Converter: passthroughConverter(),
	}

	result, err := w.Extract(context.Background(), "https://example.com/blank", "", t.TempDir())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no content")
}
