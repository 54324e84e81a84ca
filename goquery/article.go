// Package goquery parses rendered HTML into article, page, and archive
// shapes using CSS selectors. It implements the static half of every
// extraction: fetchers produce HTML, this package turns it into the
// domain's structures, and converters turn the content HTML into
// Markdown.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
)

// Article is the parsed form of a newsletter post page.
type Article struct {
	Title       string
	Subtitle    string
	Author      string
	Date        string
	ContentHTML string
	Links       []grabdoc.Link
	Paywalled   bool
}

// ParseArticle parses a rendered newsletter post. Title, author, and date
// fall through a chain of post-specific selectors, ld+json metadata, and
// document-level fallbacks; links are harvested from the article body
// only, so navigation and footer chrome never reach the dispatcher.
func ParseArticle(htmlStr, pageURL string) (*Article, error) {
	base, err := parseBaseURL(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	a := &Article{}

	titleEl := doc.Find("h1.post-title").First()
	if titleEl.Length() == 0 {
		titleEl = doc.Find(".post-header h1").First()
	}
	if titleEl.Length() == 0 {
		h1s := doc.Find("h1")
		if h1s.Length() > 1 {
			// Newsletter pages often put the publication name in the
			// first h1 and the post title in the second.
			titleEl = h1s.Eq(1)
		} else {
			titleEl = h1s.First()
		}
	}
	if titleEl.Length() > 0 {
		a.Title = strings.TrimSpace(titleEl.Text())
	} else {
		a.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	a.Subtitle = strings.TrimSpace(doc.Find("h3.subtitle, .post-header h3, .subtitle").First().Text())

	articleEl := doc.Find(".body.markup, .available-content .body, .post-content").First()
	if articleEl.Length() == 0 {
		articleEl = doc.Find("article .body, article").First()
	}
	if articleEl.Length() > 0 {
		a.ContentHTML, _ = articleEl.Html()
	}

	a.Author = strings.TrimSpace(doc.Find(`a.post-author, a[class*="author-name"], .post-header a[href*="/@"]`).First().Text())

	if ld, ok := decodeLD(doc.Find(`script[type="application/ld+json"]`).First().Text()); ok {
		a.Date = ld.DatePublished
		if a.Date == "" {
			a.Date = ld.DateModified
		}
		if a.Title == "" {
			a.Title = ld.Headline
		}
		if a.Author == "" {
			a.Author = ld.ldAuthorName()
		}
	}
	if a.Date == "" {
		timeEl := doc.Find("time").First()
		a.Date = timeEl.AttrOr("datetime", "")
		if a.Date == "" {
			a.Date = strings.TrimSpace(timeEl.Text())
		}
	}

	if articleEl.Length() > 0 {
		a.Links = harvestLinks(articleEl, base)
	}

	doc.Find(`[class*="paywall"], [class*="truncated"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if visible(sel) {
			a.Paywalled = true
			return false
		}
		return true
	})

	return a, nil
}
