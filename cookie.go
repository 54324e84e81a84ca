package grabdoc

import (
	"context"
	"net/http"
)

// CookieSource supplies cookies for a domain, typically harvested from a
// local browser profile so extractions reuse the user's signed-in
// sessions (paywalled newsletters, private Notion pages).
type CookieSource interface {
	// Cookies returns the cookies applicable to domain and its subdomains.
	// An empty slice means no session is available; that is not an error.
	Cookies(ctx context.Context, domain string) ([]*http.Cookie, error)
}
