package grabdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML (e.g., from an Extractor). baseURL, when non-empty,
	// resolves relative links and images to absolute URLs.
	Convert(html, baseURL string) (string, error)
}
