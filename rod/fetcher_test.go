//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/mock"
	"github.com/fwojciec/grabdoc/rod"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Run("fetches rendered HTML including script output", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered</title></head>
<body>
<div id="target"></div>
<script>document.getElementById("target").textContent = "hydrated content";</script>
</body>
</html>`))
		}))
		defer srv.Close()

		f, err := rod.NewFetcher(rod.WithRenderDelay(100*time.Millisecond), rod.WithScrollPasses(0))
		require.NoError(t, err)
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "hydrated content")
	})

	t.Run("dismisses overlays before capturing the page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Overlaid</title></head>
<body>
<div class="paywall-modal">Subscribe to continue</div>
<article>The actual article text.</article>
</body>
</html>`))
		}))
		defer srv.Close()

		f, err := rod.NewFetcher(rod.WithRenderDelay(100*time.Millisecond), rod.WithScrollPasses(0))
		require.NoError(t, err)
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		// The overlay stays in the DOM so paywall detection can still see
		// it, but it must be hidden.
		assert.Contains(t, html, "paywall-modal")
		assert.Contains(t, html, `style="display: none`)
		assert.Contains(t, html, "The actual article text.")
	})

	t.Run("sends cookies from the configured source", func(t *testing.T) {
		gotCookie := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case gotCookie <- r.Header.Get("Cookie"):
			default:
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html><html><body>ok</body></html>`))
		}))
		defer srv.Close()

		cookies := &mock.CookieSource{
			CookiesFn: func(ctx context.Context, domain string) ([]*http.Cookie, error) {
				return []*http.Cookie{{Name: "session", Value: "abc123", Domain: domain}}, nil
			},
		}

		f, err := rod.NewFetcher(
			rod.WithRenderDelay(100*time.Millisecond),
			rod.WithScrollPasses(0),
			rod.WithCookieSource(cookies),
		)
		require.NoError(t, err)
		defer f.Close()

		_, err = f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		select {
		case c := <-gotCookie:
			assert.Contains(t, c, "session=abc123")
		case <-time.After(5 * time.Second):
			t.Fatal("server never saw the request")
		}
	})

	t.Run("fails when the cookie source fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html><html><body>ok</body></html>`))
		}))
		defer srv.Close()

		cookies := &mock.CookieSource{
			CookiesFn: func(ctx context.Context, domain string) ([]*http.Cookie, error) {
				return nil, grabdoc.Errorf(grabdoc.EUNAVAILABLE, "cookie store locked")
			},
		}

		f, err := rod.NewFetcher(rod.WithCookieSource(cookies))
		require.NoError(t, err)
		defer f.Close()

		_, err = f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, grabdoc.EUNAVAILABLE, grabdoc.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(10 * time.Second)
		}))
		defer srv.Close()

		f, err := rod.NewFetcher()
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		_, err = f.Fetch(ctx, srv.URL)
		require.Error(t, err)
	})

	t.Run("fails immediately on already-cancelled context", func(t *testing.T) {
		f, err := rod.NewFetcher()
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = f.Fetch(ctx, "https://example.com")
		require.Error(t, err)
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Run("is safe to call multiple times", func(t *testing.T) {
		f, err := rod.NewFetcher()
		require.NoError(t, err)

		require.NoError(t, f.Close())
		require.NoError(t, f.Close())
	})
}
