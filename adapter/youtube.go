package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/fs"
	"github.com/google/uuid"
)

// Ensure YouTube implements grabdoc.Adapter.
var _ grabdoc.Adapter = (*YouTube)(nil)

// ChannelSummaryFile is the per-channel listing written alongside the
// per-video subdirectories in channel mode.
const ChannelSummaryFile = "channel-summary.json"

// YouTube extracts video transcripts and metadata. Single videos produce
// a main-article.md with description and transcript; channel and
// playlist URLs fan out into one subdirectory per video plus a summary
// document.
type YouTube struct {
	Videos grabdoc.VideoService

	// Since bounds channel listings; zero means no lower bound.
	Since time.Time

	// MaxVideos caps how many channel videos are extracted; zero means
	// no cap.
	MaxVideos int
}

// ResourceType returns "youtube".
func (y *YouTube) ResourceType() string {
	return grabdoc.TypeYouTube
}

// CanHandle claims youtube.com and youtu.be URLs.
func (y *YouTube) CanHandle(url, resourceType string) bool {
	return strings.Contains(url, "youtu.be") || strings.Contains(url, "youtube.com")
}

// Extract pulls a single video, or every listed video for channel and
// playlist URLs.
func (y *YouTube) Extract(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	if err := y.Videos.Probe(ctx); err != nil {
		return y.failed(grabdoc.ErrorMessage(err)), nil
	}

	if grabdoc.IsChannelOrPlaylist(url) {
		return y.extractChannel(ctx, url, dir)
	}
	return y.extractVideo(ctx, url, linkText, dir)
}

func (y *YouTube) extractVideo(ctx context.Context, url, linkText, dir string) (*grabdoc.ExtractionResult, error) {
	video, err := y.Videos.FetchVideo(ctx, url, dir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return y.failed(grabdoc.ErrorMessage(err)), nil
	}

	title := orUntitled(video.Title, linkText)
	date := formatUploadDate(video.UploadDate)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if video.Channel != "" {
		fmt.Fprintf(&sb, "**Channel:** %s  \n", video.Channel)
	}
	if date != "" {
		fmt.Fprintf(&sb, "**Date:** %s  \n", date)
	}
	if video.Duration != "" {
		fmt.Fprintf(&sb, "**Duration:** %s  \n", video.Duration)
	}
	fmt.Fprintf(&sb, "**URL:** %s\n", url)
	if video.Description != "" {
		fmt.Fprintf(&sb, "\n## Description\n\n%s\n", video.Description)
	}
	if video.Transcript != "" {
		fmt.Fprintf(&sb, "\n## Transcript\n\n%s\n", video.Transcript)
	}

	if _, err := fs.WriteArticle(dir, sb.String()); err != nil {
		return nil, err
	}

	var warnings []string
	if video.Transcript == "" {
		warnings = append(warnings, "No transcript available")
	}
	meta := &grabdoc.Metadata{
		ID:           uuid.NewString(),
		Success:      true,
		ResourceType: grabdoc.TypeYouTube,
		Filepath:     grabdoc.ArticleFile,
		Article: &grabdoc.ArticleInfo{
			Title:  title,
			Author: video.Channel,
			Date:   date,
			URL:    url,
		},
		Quality: &grabdoc.Quality{
			WordCount:        grabdoc.CountWords(video.Transcript),
			ExtractionMethod: "yt-dlp",
			ContentHash:      grabdoc.ContentHash(video.Transcript),
			Warnings:         warnings,
		},
	}
	if err := fs.WriteMetadata(dir, meta); err != nil {
		return nil, err
	}

	result := &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: grabdoc.TypeYouTube,
		FilesCreated: []string{grabdoc.ArticleFile, grabdoc.MetadataFile},
	}
	if video.Transcript == "" {
		result.Note = "No transcript available"
	}
	return result, nil
}

// channelSummary is the channel-summary.json document.
type channelSummary struct {
	URL        string         `json:"url"`
	VideoCount int            `json:"videoCount"`
	Extracted  int            `json:"extracted"`
	Videos     []videoSummary `json:"videos"`
}

type videoSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	UploadDate string `json:"uploadDate,omitempty"`
	Directory  string `json:"directory,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

func (y *YouTube) extractChannel(ctx context.Context, url, dir string) (*grabdoc.ExtractionResult, error) {
	var dateAfter string
	if !y.Since.IsZero() {
		dateAfter = grabdoc.DateStamp(y.Since)
	}

	entries, err := y.Videos.ListVideos(ctx, url, dateAfter)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return y.failed(grabdoc.ErrorMessage(err)), nil
	}
	if y.MaxVideos > 0 && len(entries) > y.MaxVideos {
		entries = entries[:y.MaxVideos]
	}

	summary := channelSummary{URL: url, VideoCount: len(entries)}
	var filesCreated []string

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := videoSummary{
			ID:         entry.ID,
			Title:      entry.Title,
			URL:        entry.URL,
			UploadDate: entry.UploadDate,
		}

		subdir := grabdoc.SlugFromURL(entry.URL)
		result, err := y.extractVideo(ctx, entry.URL, entry.Title, filepath.Join(dir, subdir))
		switch {
		case err != nil:
			row.Error = err.Error()
		case !result.Success:
			row.Error = result.Error
		default:
			row.Success = true
			row.Directory = subdir
			summary.Extracted++
			for _, f := range result.FilesCreated {
				filesCreated = append(filesCreated, filepath.Join(subdir, f))
			}
		}
		summary.Videos = append(summary.Videos, row)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, err
	}
	if _, err := fs.WriteDoc(dir, ChannelSummaryFile, string(data)+"\n"); err != nil {
		return nil, err
	}
	filesCreated = append(filesCreated, ChannelSummaryFile)

	return &grabdoc.ExtractionResult{
		Success:      true,
		ResourceType: grabdoc.TypeYouTube,
		FilesCreated: filesCreated,
		Note:         fmt.Sprintf("channel: %d of %d videos extracted", summary.Extracted, summary.VideoCount),
	}, nil
}

func (y *YouTube) failed(msg string) *grabdoc.ExtractionResult {
	return &grabdoc.ExtractionResult{
		Success:      false,
		ResourceType: grabdoc.TypeYouTube,
		Error:        msg,
	}
}

// formatUploadDate renders the platform's compact YYYYMMDD form as
// YYYY-MM-DD, passing anything else through untouched.
func formatUploadDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}
