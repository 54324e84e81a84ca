package grabdoc

import "context"

// DomainLimiter provides per-domain rate limiting. Dispatch and batch
// extraction pace their upstream requests through it so one article with
// many links does not hammer a single host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
