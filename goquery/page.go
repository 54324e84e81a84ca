package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
)

// contentSelectors are tried in order when locating the main content of
// an arbitrary page. The first element holding a substantial amount of
// text wins; pages with none of these land on body.
var contentSelectors = []string{
	"article",
	`[role="main"]`,
	"main",
	".post-content",
	".entry-content",
	".content",
}

// minContentChars is the rendered-text length below which a candidate
// content element is considered chrome rather than the article itself.
const minContentChars = 200

// PageMeta is title, author, and date metadata pulled from headings,
// ld+json, and OpenGraph fallbacks on an arbitrary page.
type PageMeta struct {
	Title  string
	Author string
	Date   string
}

// ParsePageMeta extracts page metadata. The title prefers the first h1
// over the document title; author and date prefer ld+json over meta tags.
func ParsePageMeta(htmlStr string) (*PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	m := &PageMeta{}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		m.Title = strings.TrimSpace(h1.Text())
	} else {
		m.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if ld, ok := decodeLD(doc.Find(`script[type="application/ld+json"]`).First().Text()); ok {
		m.Author = ld.ldAuthorName()
		m.Date = ld.DatePublished
	}

	if m.Title == "" {
		m.Title = metaContent(doc, "og:title")
	}
	if m.Author == "" {
		m.Author = metaContent(doc, "article:author")
	}
	if m.Author == "" {
		m.Author = metaContent(doc, "author")
	}
	if m.Date == "" {
		m.Date = metaContent(doc, "article:published_time")
	}
	if m.Date == "" {
		m.Date = metaContent(doc, "date")
	}

	return m, nil
}

// SelectContent returns the inner HTML of the page's main content
// element, chosen by trying contentSelectors in order and keeping the
// first whose rendered text exceeds minContentChars. Falls back to the
// whole body, which may be empty.
func SelectContent(htmlStr string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range contentSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if len(innerText(el)) > minContentChars {
			content, _ := el.Html()
			return content, nil
		}
	}

	content, _ := doc.Find("body").First().Html()
	return content, nil
}

// metaContent returns the content attribute of a meta tag looked up by
// property first, then by name.
func metaContent(doc *goquery.Document, key string) string {
	el := doc.Find(fmt.Sprintf(`meta[property=%q]`, key)).First()
	if el.Length() == 0 {
		el = doc.Find(fmt.Sprintf(`meta[name=%q]`, key)).First()
	}
	return el.AttrOr("content", "")
}
