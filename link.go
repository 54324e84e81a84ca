package grabdoc

import (
	"net/url"
	"strings"
)

// Resource type labels classifying a URL's origin platform.
const (
	TypeSubstack    = "substack"
	TypeMedium      = "medium"
	TypeYouTube     = "youtube"
	TypeNotion      = "notion"
	TypeGoogleDrive = "google_drive"
	TypeExcalidraw  = "excalidraw"
	TypeExternal    = "external"
	TypeWeb         = "web"
	TypeCatalog     = "catalog"
)

// MediumDomains are the hosts treated as Medium publications.
var MediumDomains = []string{"medium.com", "towardsdatascience.com", "betterprogramming.pub"}

// DetectSource classifies a URL into exactly one resource-type label by
// testing an ordered substring chain; first match wins. Unrecognized URLs
// classify as TypeWeb. The label is advisory: adapter CanHandle predicates
// remain authoritative, and an adapter may claim a URL regardless of it.
func DetectSource(rawURL string) string {
	if strings.Contains(rawURL, "substack.com") {
		return TypeSubstack
	}
	for _, d := range MediumDomains {
		if strings.Contains(rawURL, d) {
			return TypeMedium
		}
	}
	if strings.Contains(rawURL, "youtu.be") || strings.Contains(rawURL, "youtube.com") {
		return TypeYouTube
	}
	if strings.Contains(rawURL, "notion.so") || strings.Contains(rawURL, "notion.site") {
		return TypeNotion
	}
	if strings.Contains(rawURL, "drive.google.com") || strings.Contains(rawURL, "docs.google.com") {
		return TypeGoogleDrive
	}
	return TypeWeb
}

// ClassifyLink classifies an in-article link by resource type. It returns
// nil for links that should not be dispatched: empty URLs, fragment and
// javascript pseudo-links, substack CDN images, and substack internal
// navigation (substack.com URLs without /p/). Cross-newsletter article
// links classify as TypeExternal like any other article link.
func ClassifyLink(rawURL, text string) *Link {
	if rawURL == "" || strings.HasPrefix(rawURL, "#") || strings.HasPrefix(rawURL, "javascript:") {
		return nil
	}
	if strings.Contains(rawURL, "substackcdn.com/image") {
		return nil
	}
	if strings.Contains(rawURL, "substack.com") && !strings.Contains(rawURL, "/p/") {
		return nil
	}

	resourceType := TypeExternal
	switch {
	case strings.Contains(rawURL, "notion.so") || strings.Contains(rawURL, "notion.site"):
		resourceType = TypeNotion
	case strings.Contains(rawURL, "drive.google.com") || strings.Contains(rawURL, "docs.google.com"):
		resourceType = TypeGoogleDrive
	case strings.Contains(rawURL, "youtu.be") || strings.Contains(rawURL, "youtube.com"):
		resourceType = TypeYouTube
	case strings.Contains(rawURL, "excalidraw.com"):
		resourceType = TypeExcalidraw
	}

	return &Link{
		URL:          rawURL,
		LinkText:     strings.TrimSpace(text),
		Context:      "paragraph",
		ResourceType: resourceType,
	}
}

// SlugFromURL derives an output directory name from any URL. Substack
// article slugs and YouTube video IDs get stable, recognizable names; other
// URLs fall back to their last path segment, then to the hostname.
func SlugFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}

	path := strings.TrimRight(parsed.Path, "/")
	if i := strings.LastIndex(path, "/p/"); i >= 0 {
		return path[i+len("/p/"):]
	}

	if strings.Contains(rawURL, "youtu") {
		if vid := parsed.Query().Get("v"); vid != "" {
			return "youtube-" + vid
		}
		if parsed.Host == "youtu.be" && path != "" {
			return "youtube-" + strings.TrimPrefix(path, "/")
		}
		if list := parsed.Query().Get("list"); list != "" {
			return "youtube-" + list
		}
		segs := strings.Split(strings.Trim(path, "/"), "/")
		for i, seg := range segs {
			if strings.HasPrefix(seg, "@") {
				return "youtube-" + strings.TrimPrefix(seg, "@")
			}
			if (seg == "channel" || seg == "c" || seg == "user") && i+1 < len(segs) {
				return "youtube-" + segs[i+1]
			}
		}
	}

	if segment := path[strings.LastIndex(path, "/")+1:]; len(segment) > 2 {
		return segment
	}
	if host := strings.ReplaceAll(parsed.Host, ".", "-"); host != "" {
		return host
	}
	return "unknown"
}
