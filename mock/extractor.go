package mock

import "github.com/fwojciec/grabdoc"

var _ grabdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of grabdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*grabdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*grabdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
