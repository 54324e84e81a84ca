package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/grabdoc"
)

var _ grabdoc.CookieSource = (*CookieSource)(nil)

// CookieSource is a mock implementation of grabdoc.CookieSource.
type CookieSource struct {
	CookiesFn func(ctx context.Context, domain string) ([]*http.Cookie, error)
}

func (s *CookieSource) Cookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	return s.CookiesFn(ctx, domain)
}
