package ytdlp

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	cueTimingRE = regexp.MustCompile(`^\d{2}:\d{2}`)
	markupRE    = regexp.MustCompile(`<[^>]+>`)
	srtIndexRE  = regexp.MustCompile(`^\d+$`)
)

// transcriptGlobs order English subtitles ahead of any other language.
var transcriptGlobs = []string{"*.en.vtt", "*.vtt", "*.en.srt", "*.srt"}

// readTranscript finds the first subtitle file yt-dlp wrote into dir and
// renders it as plain text. Returns "" when no subtitles exist.
func readTranscript(dir string) string {
	for _, pattern := range transcriptGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil || len(matches) == 0 {
			continue
		}

		raw, err := os.ReadFile(matches[0])
		if err != nil {
			continue
		}
		if strings.EqualFold(filepath.Ext(matches[0]), ".vtt") {
			return ParseVTT(string(raw))
		}
		return ParseSRT(string(raw))
	}
	return ""
}

// ParseVTT extracts plain text from a WebVTT document. YouTube auto-subs
// repeat each caption across overlapping cues, so consecutive duplicate
// lines collapse to one.
func ParseVTT(text string) string {
	var kept []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") {
			continue
		}
		if cueTimingRE.MatchString(line) && strings.Contains(line, "-->") {
			continue
		}

		clean := strings.TrimSpace(markupRE.ReplaceAllString(line, ""))
		if clean != "" && (len(kept) == 0 || clean != kept[len(kept)-1]) {
			kept = append(kept, clean)
		}
	}
	return strings.Join(kept, "\n")
}

// ParseSRT extracts plain text from an SRT document, dropping sequence
// numbers and cue timings.
func ParseSRT(text string) string {
	var kept []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if srtIndexRE.MatchString(line) {
			continue
		}
		if cueTimingRE.MatchString(line) && strings.Contains(line, "-->") {
			continue
		}

		if len(kept) == 0 || line != kept[len(kept)-1] {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
