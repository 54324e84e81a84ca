// Package ytdlp shells out to the yt-dlp binary for video metadata,
// auto-generated transcripts, and channel listings. Each call spawns one
// process; the client keeps no state between calls.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/grabdoc"
)

const (
	// DefaultBin is the yt-dlp binary resolved from PATH.
	DefaultBin = "yt-dlp"

	// DefaultTimeout bounds each yt-dlp invocation.
	DefaultTimeout = 60 * time.Second
)

// stderrLimit caps how much of yt-dlp's stderr is carried into errors.
const stderrLimit = 200

// listBufferSize is the line buffer for channel listings; yt-dlp prints
// one JSON document per video and descriptions can run long.
const listBufferSize = 4 * 1024 * 1024

// Ensure Client implements grabdoc.VideoService at compile time.
var _ grabdoc.VideoService = (*Client)(nil)

// Client invokes yt-dlp.
type Client struct {
	bin     string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBin overrides the yt-dlp binary path.
func WithBin(path string) Option {
	return func(c *Client) {
		c.bin = path
	}
}

// WithTimeout bounds each yt-dlp invocation.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a yt-dlp client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		bin:     DefaultBin,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Probe verifies yt-dlp runs at all.
func (c *Client) Probe(ctx context.Context) error {
	if _, _, err := c.exec(ctx, "--version"); err != nil {
		return grabdoc.Errorf(grabdoc.EUNAVAILABLE, "yt-dlp is not installed or not working")
	}
	return nil
}

// videoJSON is the subset of yt-dlp's --print-json output we consume.
type videoJSON struct {
	Title          string `json:"title"`
	Channel        string `json:"channel"`
	Uploader       string `json:"uploader"`
	UploadDate     string `json:"upload_date"`
	DurationString string `json:"duration_string"`
	Description    string `json:"description"`
}

// FetchVideo retrieves a video's metadata and English auto-subtitles in
// one yt-dlp call. Subtitle files land in dir; the parsed transcript is
// returned on the Video and the raw files are left for inspection.
func (c *Client) FetchVideo(ctx context.Context, url, dir string) (*grabdoc.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.exec(ctx,
		"--write-auto-subs", "--sub-lang", "en",
		"--skip-download", "--print-json",
		"--paths", dir,
		url,
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, grabdoc.Errorf(grabdoc.EUNAVAILABLE, "yt-dlp timed out")
		}
		return nil, grabdoc.Errorf(grabdoc.EINTERNAL, "yt-dlp failed: %s", truncate(strings.TrimSpace(string(stderr)), stderrLimit))
	}

	var raw videoJSON
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINTERNAL, "yt-dlp printed invalid JSON: %v", err)
	}

	video := &grabdoc.Video{
		Title:       raw.Title,
		Channel:     raw.Channel,
		UploadDate:  raw.UploadDate,
		Duration:    raw.DurationString,
		Description: raw.Description,
		Transcript:  readTranscript(dir),
	}
	if video.Channel == "" {
		video.Channel = raw.Uploader
	}
	return video, nil
}

// entryJSON is one line of a --flat-playlist listing.
type entryJSON struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	WebpageURL string `json:"webpage_url"`
	UploadDate string `json:"upload_date"`
}

// ListVideos enumerates a channel or playlist as yt-dlp reports it.
// A listing failure yields an empty slice so a channel with unlistable
// videos still produces a summary; only context cancellation errors.
func (c *Client) ListVideos(ctx context.Context, url, dateAfter string) ([]grabdoc.VideoEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"--flat-playlist", "--dump-json"}
	if dateAfter != "" {
		args = append(args, "--dateafter", dateAfter)
	}
	args = append(args, url)

	entries := []grabdoc.VideoEntry{}

	stdout, _, err := c.exec(ctx, args...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return entries, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), listBufferSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e entryJSON
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}

		videoURL := e.URL
		if videoURL == "" {
			videoURL = e.WebpageURL
		}
		if videoURL == "" && e.ID != "" {
			videoURL = "https://www.youtube.com/watch?v=" + e.ID
		}
		if videoURL == "" {
			continue
		}

		entries = append(entries, grabdoc.VideoEntry{
			ID:         e.ID,
			Title:      e.Title,
			URL:        videoURL,
			UploadDate: e.UploadDate,
		})
	}

	return entries, nil
}

// exec runs one yt-dlp invocation, capturing both output streams.
func (c *Client) exec(ctx context.Context, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, c.bin, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
