package goquery

import (
	"encoding/json"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabdoc"
	"golang.org/x/net/html"
)

// parseBaseURL parses the page URL links are resolved against.
func parseBaseURL(pageURL string) (*url.URL, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "invalid base URL: %v", err)
	}
	return base, nil
}

// harvestLinks collects anchors under root in document order, resolves
// them against base, deduplicates by resolved URL with the first
// occurrence winning, and classifies each one. Links the classifier
// rejects (images, navigation chrome, non-content URLs) are dropped.
// Deduplication happens before classification so a rejected first
// occurrence still shadows later duplicates.
func harvestLinks(root *goquery.Selection, base *url.URL) []grabdoc.Link {
	seen := make(map[string]bool)
	var links []grabdoc.Link

	root.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		resolved := resolveLink(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		if link := grabdoc.ClassifyLink(resolved, a.Text()); link != nil {
			links = append(links, *link)
		}
	})

	return links
}

// resolveLink resolves href against base and returns the absolute URL.
// Returns empty string for unparseable hrefs, non-http(s) schemes
// (javascript:, mailto:, tel:, data:), and self-referential links (same
// URL as base after ignoring fragments). Unlike a crawler's resolver the
// fragment is preserved on the result; some resource URLs carry their
// payload there.
func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	noFragment := *resolved
	noFragment.Fragment = ""
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if noFragment.String() == baseNoFragment.String() {
		return ""
	}

	return resolved.String()
}

// visible reports whether the selection's first element is not hidden via
// an inline display:none. Rendered snapshots arrive with dismissed
// overlays inline-hidden rather than removed, so presence alone is not a
// signal.
func visible(sel *goquery.Selection) bool {
	style := strings.ReplaceAll(sel.AttrOr("style", ""), " ", "")
	return !strings.Contains(style, "display:none")
}

// blockTags are elements that force a line break when rendering text the
// way a browser lays it out.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dt": true, "dd": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// innerText renders the selection's text roughly the way a browser lays
// it out: whitespace inside text nodes collapses to single spaces and
// block-level elements end their line. Script and style contents are
// excluded, and blank lines do not survive.
func innerText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(&sb, n)
	}

	var out []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeNodeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(foldSpace(n.Data))
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		case "br":
			sb.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(sb, c)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteString("\n")
	}
}

// foldSpace collapses whitespace runs to single spaces the way CSS
// white-space: normal does, keeping boundary spaces so adjacent inline
// elements stay separated.
func foldSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// ldDocument is the subset of schema.org metadata read from
// application/ld+json blocks.
type ldDocument struct {
	Headline      string          `json:"headline"`
	DatePublished string          `json:"datePublished"`
	DateModified  string          `json:"dateModified"`
	Author        json.RawMessage `json:"author"`
}

// decodeLD parses one ld+json script body. Publishers sometimes wrap the
// document in a top-level array; the first element is used. Returns false
// when the block is not parseable.
func decodeLD(text string) (*ldDocument, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	if strings.HasPrefix(text, "[") {
		var docs []ldDocument
		if err := json.Unmarshal([]byte(text), &docs); err != nil || len(docs) == 0 {
			return nil, false
		}
		return &docs[0], true
	}

	var doc ldDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

// ldAuthorName extracts the author name from an ld+json author field,
// which is an object or an array of objects.
func (d *ldDocument) ldAuthorName() string {
	if d == nil || len(d.Author) == 0 {
		return ""
	}

	type person struct {
		Name string `json:"name"`
	}

	var one person
	if err := json.Unmarshal(d.Author, &one); err == nil && one.Name != "" {
		return one.Name
	}

	var many []person
	if err := json.Unmarshal(d.Author, &many); err == nil && len(many) > 0 {
		return many[0].Name
	}

	return ""
}
