package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/fs"
	"github.com/fwojciec/grabdoc/goquery"
	"github.com/google/uuid"
)

// Ensure Web implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*Web)(nil)

// Web is the generic fallback for any article-shaped page. Extractors
// are tried in order (typically trafilatura, then readability); when
// none finds content, a selector chain over the rendered HTML decides.
//
// Web claims every URL, so it must be registered after the site-specific
// adapters and before only the catalog fallback.
type Web struct {
	Fetcher    grabdoc.Fetcher
	Extractors []grabdoc.Extractor
	Converter  grabdoc.Converter
}

// ResourceType returns "web".
func (w *Web) ResourceType() string {
	return grabdoc.TypeWeb
}

// CanHandle always returns true.
func (w *Web) CanHandle(url, resourceType string) bool {
	return true
}

// Extract fetches the page, locates its main content, and writes
// main-article.md and metadata.json into dir. Unlike the newsletter
// adapters it harvests no links: generic pages link to everything, and
// dispatching those would crawl the open web.
func (w *Web) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	htmlStr, err := w.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	contentHTML, method := w.selectContent(htmlStr)
	if strings.TrimSpace(contentHTML) == "" {
		return w.failed("no content found on page"), nil
	}

	body, err := w.Converter.Convert(contentHTML, url)
	if err != nil {
		return w.failed(grabdoc.ErrorMessage(err)), nil
	}

	pageMeta, err := goquery.ParsePageMeta(htmlStr)
	if err != nil {
		pageMeta = &goquery.PageMeta{}
	}

	info := grabdoc.ArticleInfo{
		Title:  orUntitled(pageMeta.Title, linkText),
		Author: pageMeta.Author,
		Date:   pageMeta.Date,
		URL:    url,
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", info.Title)
	if info.Author != "" {
		fmt.Fprintf(&sb, "**Author:** %s  \n", info.Author)
	}
	if info.Date != "" {
		fmt.Fprintf(&sb, "**Date:** %s  \n", grabdoc.FormatDate(info.Date))
	}
	fmt.Fprintf(&sb, "**URL:** %s\n\n", url)
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}

	if _, err := fs.WriteArticle(dir, sb.String()); err != nil {
		return nil, err
	}

	meta := &grabdoc.Metadata{
		ID:           uuid.NewString(),
		Success:      true,
		ResourceType: grabdoc.TypeWeb,
		Filepath:     grabdoc.ArticleFile,
		Article:      &info,
		Quality: &grabdoc.Quality{
			WordCount:        grabdoc.CountWords(body),
			ExtractionMethod: method,
			ContentHash:      grabdoc.ContentHash(body),
		},
	}
	if err := fs.WriteMetadata(dir, meta); err != nil {
		return nil, err
	}

	return &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: grabdoc.TypeWeb,
		FilesCreated: []string{grabdoc.ArticleFile, grabdoc.MetadataFile},
	}, nil
}

// selectContent runs the extractor chain and falls back to the selector
// scan, reporting which method produced the content.
func (w *Web) selectContent(htmlStr string) (content, method string) {
	for _, ex := range w.Extractors {
		result, err := ex.Extract(htmlStr)
		if err != nil || result == nil || strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}
		return result.ContentHTML, extractorName(ex)
	}

	content, err := goquery.SelectContent(htmlStr)
	if err != nil {
		return "", "selector chain"
	}
	return content, "selector chain"
}

func (w *Web) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeWeb,
		Error:        msg,
	}
}

// extractorName reports an extractor's package-qualified type for the
// extractionMethod quality field.
func extractorName(ex grabdoc.Extractor) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", ex), "*")
}
