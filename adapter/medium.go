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

// Ensure Medium implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*Medium)(nil)

// Medium extracts Medium stories, including publications hosted on
// Medium's partner domains. Member-only stories extract whatever text is
// visible and report Success=false.
type Medium struct {
	Fetcher   grabdoc.Fetcher
	Converter grabdoc.Converter
}

// ResourceType returns "medium".
func (m *Medium) ResourceType() string {
	return grabdoc.TypeMedium
}

// CanHandle claims URLs on any known Medium domain.
func (m *Medium) CanHandle(url, resourceType string) bool {
	for _, d := range grabdoc.MediumDomains {
		if strings.Contains(url, d) {
			return true
		}
	}
	return false
}

// Extract fetches the story and writes main-article.md and metadata.json
// into dir.
func (m *Medium) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	htmlStr, err := m.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	post, err := goquery.ParseMediumPost(htmlStr, url)
	if err != nil {
		return m.failed(grabdoc.ErrorMessage(err)), nil
	}
	if post.ContentHTML == "" {
		return m.failed("no article content found on page"), nil
	}

	body, err := m.Converter.Convert(post.ContentHTML, url)
	if err != nil {
		return m.failed(grabdoc.ErrorMessage(err)), nil
	}

	info := grabdoc.ArticleInfo{
		Title:  orUntitled(post.Title, linkText),
		Author: post.Author,
		Date:   grabdoc.FormatDate(post.Date),
		URL:    url,
	}
	wordCount := grabdoc.CountWords(body)

	var warnings []string
	if post.Paywalled {
		warnings = append(warnings, "Content may be truncated (paywall/member-only)")
	}
	if wordCount < 100 {
		warnings = append(warnings, fmt.Sprintf("Low word count (%d)", wordCount))
	}
	qualityLabel := "Complete"
	if post.Paywalled {
		qualityLabel = "Partial (paywall)"
	}

	if _, err := fs.WriteArticle(dir, grabdoc.FormatArticle(info, wordCount, qualityLabel, body)); err != nil {
		return nil, err
	}

	meta := &grabdoc.Metadata{
		ID:           uuid.NewString(),
		Success:      !post.Paywalled,
		ResourceType: grabdoc.TypeMedium,
		Filepath:     grabdoc.ArticleFile,
		Article:      &info,
		Quality: &grabdoc.Quality{
			WordCount:        wordCount,
			ExtractionMethod: "rendered DOM + selector parse",
			ContentHash:      grabdoc.ContentHash(body),
			Warnings:         warnings,
		},
		Links: post.Links,
	}
	if err := fs.WriteMetadata(dir, meta); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("%d words", wordCount)
	if post.Paywalled {
		note += ", paywalled"
	}
	return &grabdoc.ExtractionResult{
		Success:      !post.Paywalled,
		ResourceType: grabdoc.TypeMedium,
		FilesCreated: []string{grabdoc.ArticleFile, grabdoc.MetadataFile},
		Note:         note,
	}, nil
}

func (m *Medium) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeMedium,
		Error:        msg,
	}
}
