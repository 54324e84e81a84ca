package grabdoc

import (
	"fmt"
	"regexp"
	"strings"
)

// Google URL patterns carrying a document or file ID.
var (
	driveDocRE   = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)
	driveSheetRE = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	driveSlideRE = regexp.MustCompile(`/presentation/d/([a-zA-Z0-9_-]+)`)
	driveFileRE  = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
)

// DriveExportURL maps a Google Docs/Sheets/Slides/Drive file URL to the
// direct export URL Google serves without a UI. Documents export as PDF,
// spreadsheets as XLSX, presentations as PPTX; plain Drive files use the
// uc download endpoint. Returns "" when the URL carries no recognizable ID.
func DriveExportURL(rawURL string) string {
	if m := driveDocRE.FindStringSubmatch(rawURL); m != nil {
		return fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=pdf", m[1])
	}
	if m := driveSheetRE.FindStringSubmatch(rawURL); m != nil {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=xlsx", m[1])
	}
	if m := driveSlideRE.FindStringSubmatch(rawURL); m != nil {
		return fmt.Sprintf("https://docs.google.com/presentation/d/%s/export?format=pptx", m[1])
	}
	if m := driveFileRE.FindStringSubmatch(rawURL); m != nil {
		return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", m[1])
	}
	return ""
}

// IsDriveFolder reports whether the URL points at a Drive folder. Folders
// have no direct export endpoint and need an authenticated session to
// download.
func IsDriveFolder(rawURL string) bool {
	return strings.Contains(rawURL, "/folders/")
}
