package grabdoc

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var formattedDateRE = regexp.MustCompile(`^[A-Z][a-z]{2}\s+\d{1,2},?\s+\d{4}`)

// FormatDate renders a timestamp string as "Jan 02, 2006". Strings already
// in that shape pass through, and anything unparseable is returned
// unchanged so upstream values are never silently lost.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if formattedDateRE.MatchString(s) {
		return s
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return s
	}
	return t.Format("Jan 02, 2006")
}

// ParseSince interprets a --since window relative to now. Accepted forms:
// "30d" (days), "4w" (weeks), "3m" (months of 30 days), "2006-01-02", and
// "20060102". It fails with EINVALID for anything else.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, Errorf(EINVALID, "invalid --since value: empty")
	}

	if n, err := strconv.Atoi(s[:len(s)-1]); err == nil && n >= 0 {
		switch s[len(s)-1] {
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'w':
			return now.AddDate(0, 0, -n*7), nil
		case 'm':
			return now.AddDate(0, 0, -n*30), nil
		}
	}

	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, Errorf(EINVALID, "invalid --since value: %q (use 30d, 4w, 3m, or a date)", s)
}

// DateStamp renders t in the compact YYYYMMDD form yt-dlp's --dateafter
// expects.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}
