// Package adapter implements the site adapters and the default adapter
// registry. Each adapter knows how to extract one class of URL; the
// registry resolves URLs to adapters in registration order, so the build
// order here is a correctness invariant: specific site adapters come
// first, the generic web adapter absorbs everything article-shaped, and
// the catalog adapter records what nothing else could extract.
package adapter

import (
	"log/slog"
	"time"

	"github.com/fwojciec/grabdoc"
	grabslog "github.com/fwojciec/grabdoc/slog"
)

// Services bundles the collaborators the site adapters draw on. Fields
// an adapter needs but does not find are that adapter's problem at
// extraction time, not registry build time; a registry built from an
// empty Services still resolves URLs.
type Services struct {
	Fetcher    grabdoc.Fetcher
	Extractors []grabdoc.Extractor
	Converter  grabdoc.Converter
	Videos     grabdoc.VideoService
	Downloader grabdoc.Downloader

	// Since and MaxVideos bound YouTube channel extraction.
	Since     time.Time
	MaxVideos int

	// Logger, when set, wraps every adapter in a logging decorator.
	Logger *slog.Logger
}

// NewRegistry builds the default adapter resolution order. The web
// adapter matches every URL, so Get never fails on a registry built
// here; the catalog adapter behind it only sees URLs when a custom
// configuration removes the web fallback.
func NewRegistry(svc Services) *grabdoc.Registry {
	adapters := []grabdoc.Adapter{
		&Substack{Fetcher: svc.Fetcher, Converter: svc.Converter},
		&Notion{Fetcher: svc.Fetcher},
		&GoogleDrive{Downloader: svc.Downloader},
		&YouTube{Videos: svc.Videos, Since: svc.Since, MaxVideos: svc.MaxVideos},
		&Medium{Fetcher: svc.Fetcher, Converter: svc.Converter},
		&Web{Fetcher: svc.Fetcher, Extractors: svc.Extractors, Converter: svc.Converter},
		&Catalog{},
	}

	registry := &grabdoc.Registry{}
	for _, a := range adapters {
		if svc.Logger != nil {
			registry.Register(grabslog.NewLoggingAdapter(a, svc.Logger))
		} else {
			registry.Register(a)
		}
	}
	return registry
}
