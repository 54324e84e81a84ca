package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
)

// NotionPage is the text content scraped from a rendered Notion page.
// Notion markup is a deep tree of anonymous divs, so only the laid-out
// text survives; structure is not recoverable from class names.
type NotionPage struct {
	Title string
	Text  string
}

// ParseNotionPage extracts the title and rendered text of a Notion page.
// Emptiness and login-wall judgements are left to the caller; this only
// reports what is on the page.
func ParseNotionPage(htmlStr string) (*NotionPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	p := &NotionPage{}

	content := doc.Find("main").First()
	if content.Length() == 0 {
		content = doc.Find(`[class*="notion-page-content"]`).First()
	}
	if content.Length() == 0 {
		content = doc.Find(".notion-page-content").First()
	}
	if content.Length() == 0 {
		content = doc.Find(`[class*="layout-content"]`).First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	p.Text = innerText(content)

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		p.Title = strings.TrimSpace(h1.Text())
	} else {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return p, nil
}
