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

// Ensure Substack implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*Substack)(nil)

// Substack extracts newsletter posts: article text as Markdown, the
// classified resource links the dispatcher fans out over, and a
// metadata.json document recording extraction quality.
type Substack struct {
	Fetcher   grabdoc.Fetcher
	Converter grabdoc.Converter
}

// ResourceType returns "substack".
func (s *Substack) ResourceType() string {
	return grabdoc.TypeSubstack
}

// CanHandle claims substack.com article URLs regardless of the hinted
// type. Publication homepages and other non-/p/ pages fall through to the
// generic web adapter; the article parser has nothing to find on them.
func (s *Substack) CanHandle(url, resourceType string) bool {
	return strings.Contains(url, "substack.com") && strings.Contains(url, "/p/")
}

// Extract fetches the post, parses it, and writes main-article.md and
// metadata.json into dir. A paywalled post still produces both files but
// reports Success=false: the truncated text is worth keeping, the caller
// just must not treat it as the whole article.
func (s *Substack) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	htmlStr, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	article, err := goquery.ParseArticle(htmlStr, url)
	if err != nil {
		return s.failed(grabdoc.ErrorMessage(err)), nil
	}
	if article.ContentHTML == "" {
		return s.failed("no article content found on page"), nil
	}

	body, err := s.Converter.Convert(article.ContentHTML, url)
	if err != nil {
		return s.failed(grabdoc.ErrorMessage(err)), nil
	}

	info := grabdoc.ArticleInfo{
		Title:  orUntitled(article.Title, linkText),
		Author: article.Author,
		Date:   grabdoc.FormatDate(article.Date),
		URL:    url,
	}
	wordCount := grabdoc.CountWords(body)

	var warnings []string
	if article.Paywalled {
		warnings = append(warnings, "Content may be truncated (paywall detected)")
	}
	if wordCount < 100 {
		warnings = append(warnings, fmt.Sprintf("Low word count (%d)", wordCount))
	}
	qualityLabel := "Complete"
	if article.Paywalled {
		qualityLabel = "Partial (paywall)"
	}

	if _, err := fs.WriteArticle(dir, grabdoc.FormatArticle(info, wordCount, qualityLabel, body)); err != nil {
		return nil, err
	}

	meta := &grabdoc.Metadata{
		ID:           uuid.NewString(),
		Success:      !article.Paywalled,
		ResourceType: grabdoc.TypeSubstack,
		Filepath:     grabdoc.ArticleFile,
		Article:      &info,
		Quality: &grabdoc.Quality{
			WordCount:        wordCount,
			ExtractionMethod: "rendered DOM + selector parse",
			ContentHash:      grabdoc.ContentHash(body),
			Warnings:         warnings,
		},
		Links: article.Links,
	}
	if err := fs.WriteMetadata(dir, meta); err != nil {
		return nil, err
	}

	result := &grabdoc.ExtractionResult{
		Success:      !article.Paywalled,
		ResourceType: grabdoc.TypeSubstack,
		FilesCreated: []string{grabdoc.ArticleFile, grabdoc.MetadataFile},
	}
	if article.Paywalled {
		result.Note = "content may be truncated (paywall detected)"
	}
	return result, nil
}

func (s *Substack) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeSubstack,
		Error:        msg,
	}
}

// orUntitled picks the first non-empty of title and linkText, falling
// back to "Untitled".
func orUntitled(title, linkText string) string {
	if title != "" {
		return title
	}
	if linkText != "" {
		return linkText
	}
	return "Untitled"
}
