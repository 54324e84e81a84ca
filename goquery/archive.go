package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
)

// ArchiveEntry is one post row parsed from a publication's archive page.
type ArchiveEntry struct {
	URL      string
	Title    string
	Subtitle string
	Date     string
}

// maxContainerDepth limits the parent walk from a time element to the
// row container holding the post link.
const maxContainerDepth = 8

// ParseArchive parses a newsletter archive listing into entries. Archive
// markup carries no stable classes, so rows are located structurally:
// each time element anchors a walk up to the nearest container with a
// post link, and the row's title and subtitle are the texts of anchors
// sharing that link's href. Rows without a usable title are skipped, and
// each post URL is reported once.
func ParseArchive(htmlStr, baseURL string) ([]ArchiveEntry, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var entries []ArchiveEntry

	doc.Find("time").Each(func(_ int, t *goquery.Selection) {
		container := t.Parent()
		var link *goquery.Selection
		for i := 0; i < maxContainerDepth && container.Length() > 0; i++ {
			if l := container.Find(`a[href*="/p/"]`).First(); l.Length() > 0 {
				link = l
				break
			}
			container = container.Parent()
		}
		if link == nil {
			return
		}

		href := link.AttrOr("href", "")
		resolved := resolveLink(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		date := t.AttrOr("datetime", "")
		if date == "" {
			date = strings.TrimSpace(t.Text())
		}

		var title, subtitle string
		container.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			if a.AttrOr("href", "") != href {
				return
			}
			text := strings.TrimSpace(a.Text())
			if utf8.RuneCountInString(text) < 3 {
				return
			}
			if title == "" {
				title = text
				return
			}
			if subtitle == "" && text != title {
				subtitle = text
			}
		})
		if title == "" {
			return
		}

		entries = append(entries, ArchiveEntry{
			URL:      resolved,
			Title:    title,
			Subtitle: subtitle,
			Date:     date,
		})
	})

	return entries, nil
}
