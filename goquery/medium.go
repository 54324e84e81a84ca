package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
)

// MediumPost is the parsed form of a Medium story page.
type MediumPost struct {
	Title       string
	Author      string
	Date        string
	ContentHTML string
	Links       []grabdoc.Link
	Paywalled   bool
}

// ParseMediumPost parses a rendered Medium story. Paywall state is
// derived from a visible paywall marker or the "Member-only story"
// banner text; the dismissed-overlay case leaves the marker inline-hidden
// so the banner text usually decides.
func ParseMediumPost(htmlStr, pageURL string) (*MediumPost, error) {
	base, err := parseBaseURL(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	p := &MediumPost{}

	articleEl := doc.Find("article").First()
	if articleEl.Length() == 0 {
		articleEl = doc.Find(`section[data-testid="post-content"]`).First()
	}
	if articleEl.Length() == 0 {
		articleEl = doc.Find(`[role="main"] section`).First()
	}
	if articleEl.Length() > 0 {
		p.ContentHTML, _ = articleEl.Html()
	}

	h1 := doc.Find("article h1").First()
	if h1.Length() == 0 {
		h1 = doc.Find("h1").First()
	}
	if h1.Length() > 0 {
		p.Title = strings.TrimSpace(h1.Text())
	} else {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	authorEl := doc.Find(`a[data-testid="authorName"]`).First()
	if authorEl.Length() == 0 {
		authorEl = doc.Find(`[rel="author"]`).First()
	}
	if authorEl.Length() == 0 {
		authorEl = doc.Find(`a[href*="/@"]`).First()
	}
	p.Author = strings.TrimSpace(authorEl.Text())

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		ld, ok := decodeLD(sel.Text())
		if !ok {
			return
		}
		if ld.DatePublished != "" {
			p.Date = ld.DatePublished
		}
		if ld.Headline != "" && p.Title == "" {
			p.Title = ld.Headline
		}
	})
	if p.Date == "" {
		timeEl := doc.Find("time").First()
		p.Date = timeEl.AttrOr("datetime", "")
		if p.Date == "" {
			p.Date = strings.TrimSpace(timeEl.Text())
		}
	}

	if articleEl.Length() > 0 {
		p.Links = harvestLinks(articleEl, base)
	}

	paywallEl := doc.Find(`[data-testid="paywall"]`).First()
	if paywallEl.Length() > 0 && visible(paywallEl) {
		p.Paywalled = true
	} else if strings.Contains(doc.Find("body").Text(), "Member-only story") {
		p.Paywalled = true
	}

	return p, nil
}
