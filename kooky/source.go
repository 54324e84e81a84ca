// Package kooky reads cookies out of the browser profiles installed on
// this machine, so extractions can ride the user's logged-in sessions
// instead of hitting paywalls and login walls anonymously.
package kooky

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register cookie store finders

	"github.com/fwojciec/grabdoc"
)

// Ensure Source implements grabdoc.CookieSource at compile time.
var _ grabdoc.CookieSource = (*Source)(nil)

// Source reads cookies from browser cookie stores.
type Source struct {
	browser string
}

// NewSource creates a cookie source scoped to the named browser
// ("chrome", "firefox", "safari", "edge"). An empty name reads from every
// browser found on the machine.
func NewSource(browser string) *Source {
	return &Source{browser: strings.ToLower(strings.TrimSpace(browser))}
}

// Cookies returns the stored cookies a browser would send to domain,
// including parent-domain cookies. Unreadable stores are skipped: a
// profile locked by a running browser should not take down the whole run
// when another store may hold the session.
func (s *Source) Cookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	now := time.Now()

	var cookies []*http.Cookie
	for cookie, err := range kooky.TraverseCookies(ctx) {
		if err != nil {
			continue
		}
		if !s.matchesBrowser(cookie.Browser) || !domainMatches(cookie.Domain, domain) {
			continue
		}
		// Session cookies carry a zero expiry.
		if !cookie.Expires.IsZero() && cookie.Expires.Before(now) {
			continue
		}

		cookies = append(cookies, &http.Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Expires:  cookie.Expires,
			Secure:   cookie.Secure,
			HttpOnly: cookie.HttpOnly,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}

func (s *Source) matchesBrowser(info kooky.BrowserInfo) bool {
	if s.browser == "" {
		return true
	}
	name := strings.ToLower(info.Browser())
	if s.browser == "chrome" && strings.Contains(name, "chromium") {
		return true
	}
	return strings.Contains(name, s.browser)
}

// domainMatches applies browser send rules: an exact host match, or a
// cookie scoped to a parent domain of the target.
func domainMatches(cookieDomain, target string) bool {
	if cookieDomain == "" || target == "" {
		return false
	}
	cookieDomain = strings.TrimPrefix(cookieDomain, ".")

	if cookieDomain == target {
		return true
	}
	return strings.HasSuffix(target, "."+cookieDomain)
}
