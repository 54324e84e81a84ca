package grabdoc

import "context"

// ExtractionResult is the uniform outcome contract returned by every
// adapter invocation. It is immutable once returned; the dispatcher
// collects results in dispatch order and serializes them into the parent
// metadata file under resource_extraction.
type ExtractionResult struct {
	Success      bool     `json:"success"`
	ResourceType string   `json:"resource_type"`
	FilesCreated []string `json:"files_created"`
	Error        string   `json:"error,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// Adapter extracts structured content from one class of URL.
//
// Adapters are registered once at startup and must stay stateless across
// invocations: no call ordering or shared state may be assumed, though an
// adapter holds a fixed identity such as its resource type. Expected
// per-resource failures (paywall, missing transcript, upstream 404) are
// reported inside the result with Success=false; the error return is
// reserved for infrastructure faults such as a dead browser or a canceled
// context.
type Adapter interface {
	// ResourceType returns the fixed type label this adapter identifies as.
	ResourceType() string

	// CanHandle reports whether this adapter claims the URL. The
	// resourceType hint comes from link classification or source detection;
	// it is advisory, and an adapter may claim a URL regardless of it.
	CanHandle(url, resourceType string) bool

	// Extract pulls the resource at url into dir. linkText is the anchor
	// text the URL was discovered with, empty for top-level extractions.
	// Adapters may write files under dir but must not assume exclusivity
	// over it.
	Extract(ctx context.Context, url, linkText, dir string) (*ExtractionResult, error)
}

// Registry is an ordered sequence of adapters. Registration order is
// priority: Get scans in order and the first CanHandle match wins, so
// specific adapters must be registered before generic fallbacks. It is
// deliberately a slice rather than a map keyed by type; URL patterns
// overlap and resolution order is the point.
//
// The zero value is an empty registry ready for use.
type Registry struct {
	adapters []Adapter
}

// Register appends the adapter to the resolution order. Duplicates are
// kept as-is; there is no priority field beyond position.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Get returns the first registered adapter whose CanHandle claims the URL.
// It fails with ENOTFOUND when the list is exhausted, which is unreachable
// in the default configuration because the web and catalog fallbacks match
// everything.
func (r *Registry) Get(url, resourceType string) (Adapter, error) {
	for _, a := range r.adapters {
		if a.CanHandle(url, resourceType) {
			return a, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "no adapter registered for URL: %s", url)
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}
