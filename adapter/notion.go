package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/fs"
	"github.com/fwojciec/grabdoc/goquery"
)

// Ensure Notion implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*Notion)(nil)

// loginWallPhrases mark a Notion page that rendered its sign-in chrome
// instead of content. Short pages containing any of them are treated as
// walled; long pages may legitimately mention signing up.
var loginWallPhrases = []string{"log in", "sign up", "continue with google", "continue with apple"}

// Notion extracts the rendered text of a Notion page. Notion markup is a
// deep tree of anonymous divs, so only the laid-out text is recoverable;
// the output is a text document, not structured Markdown.
type Notion struct {
	Fetcher grabdoc.Fetcher
}

// ResourceType returns "notion".
func (n *Notion) ResourceType() string {
	return grabdoc.TypeNotion
}

// CanHandle claims notion.so and notion.site URLs.
func (n *Notion) CanHandle(url, resourceType string) bool {
	return strings.Contains(url, "notion.so") || strings.Contains(url, "notion.site")
}

// Extract fetches the page and writes its text as notion-content.md, or
// notion-<slug>.md when the directory already holds a notion document so
// multiple linked pages do not overwrite each other.
func (n *Notion) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	htmlStr, err := n.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	page, err := goquery.ParseNotionPage(htmlStr)
	if err != nil {
		return n.failed(grabdoc.ErrorMessage(err)), nil
	}

	text := strings.TrimSpace(page.Text)
	if len(text) < 50 {
		return n.failed("empty page or failed to load"), nil
	}

	lower := strings.ToLower(text)
	for _, phrase := range loginWallPhrases {
		if strings.Contains(lower, phrase) && len(text) < 200 {
			return n.failed("login required"), nil
		}
	}

	title := page.Title
	if title == "" {
		title = "Notion Page"
	}

	filename := notionFilename(url, dir)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "> Source: %s\n\n", url)
	sb.WriteString("---\n\n")
	sb.WriteString(text)
	sb.WriteString("\n")

	if _, err := fs.WriteDoc(dir, filename, sb.String()); err != nil {
		return nil, err
	}

	return &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: grabdoc.TypeNotion,
		FilesCreated: []string{filename},
	}, nil
}

func (n *Notion) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeNotion,
		Error:        msg,
	}
}

// notionFilename returns notion-content.md for the first Notion document
// in dir and notion-<slug>.md afterwards, slugging from the trailing ID
// fragment Notion appends to page URLs.
func notionFilename(url, dir string) string {
	existing, _ := filepath.Glob(filepath.Join(dir, "notion-*.md"))
	if len(existing) == 0 {
		return "notion-content.md"
	}

	trimmed := strings.TrimRight(url, "/")
	slug := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if i := strings.LastIndex(slug, "-"); i >= 0 {
		slug = slug[i+1:]
	}
	if len(slug) > 12 {
		slug = slug[:12]
	}
	if slug == "" {
		slug = "page"
	}
	return fmt.Sprintf("notion-%s.md", slug)
}
