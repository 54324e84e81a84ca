package readability

import (
	"strings"

	"github.com/fwojciec/grabdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements grabdoc.Extractor at compile time.
var _ grabdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML. It
// serves as the fallback when trafilatura comes back empty; readability
// is more permissive and almost always returns something.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*grabdoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &grabdoc.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
