package grabdoc

import (
	"context"
	"strings"
)

// Video is the metadata and transcript of a single video.
type Video struct {
	Title       string
	Channel     string
	UploadDate  string // compact YYYYMMDD as reported by the platform
	Duration    string
	Description string
	Transcript  string
}

// VideoEntry is one video discovered when listing a channel or playlist.
type VideoEntry struct {
	ID         string
	Title      string
	URL        string
	UploadDate string
}

// VideoService fetches video metadata, transcripts, and channel listings.
type VideoService interface {
	// Probe verifies the underlying tooling is available.
	Probe(ctx context.Context) error

	// FetchVideo retrieves a video's metadata and auto-generated
	// transcript, using dir as scratch space for subtitle files.
	FetchVideo(ctx context.Context, url, dir string) (*Video, error)

	// ListVideos enumerates a channel or playlist, newest first as the
	// platform reports them. dateAfter, when non-empty, is a compact
	// YYYYMMDD lower bound. A listing failure yields an empty slice, not
	// an error: a channel with unlistable videos still gets a summary.
	ListVideos(ctx context.Context, url, dateAfter string) ([]VideoEntry, error)
}

// channelPathMarkers identify channel and playlist URLs, which list many
// videos instead of playing one.
var channelPathMarkers = []string{"/@", "/c/", "/channel/", "/user/", "/playlist?list="}

// IsChannelOrPlaylist reports whether a YouTube URL names a channel or
// playlist rather than a single video.
func IsChannelOrPlaylist(rawURL string) bool {
	for _, marker := range channelPathMarkers {
		if strings.Contains(rawURL, marker) {
			return true
		}
	}
	return false
}
