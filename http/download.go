package http

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/grabdoc"
)

// Ensure Downloader implements grabdoc.Downloader.
var _ grabdoc.Downloader = (*Downloader)(nil)

// Downloader saves direct file exports to disk. Google Docs, Sheets and
// Slides serve office formats from their export endpoints without a UI;
// plain Drive files come from the uc download endpoint.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a new Downloader with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client}
}

// Download fetches rawURL into dir, naming the file from the
// Content-Disposition header when present. Zip archives are expanded into
// a subdirectory named after the archive and the archive itself removed.
// Returns the paths of the files created.
func (d *Downloader) Download(ctx context.Context, rawURL, dir string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	// Export endpoints serve files directly. An HTML response means Google
	// interposed a page instead: a virus-scan confirmation for large files
	// or a sign-in wall for restricted ones.
	contentType := resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/html") {
		return nil, grabdoc.Errorf(grabdoc.EUNAVAILABLE,
			"download returned an HTML page instead of a file (may need authentication or download confirmation): %s", rawURL)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := downloadFilename(resp, rawURL)
	dest := filepath.Join(dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	if isZip(name, contentType) {
		return expandZip(dest, dir)
	}

	return []string{dest}, nil
}

// downloadFilename picks a name for the downloaded file: the
// Content-Disposition filename if the server sent one, the URL's last path
// segment if it looks like a filename, and "download" otherwise.
func downloadFilename(resp *http.Response, rawURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := filepath.Base(params["filename"]); name != "" && name != "." && name != string(filepath.Separator) {
				return name
			}
		}
	}

	if parsed, err := url.Parse(rawURL); err == nil {
		if base := filepath.Base(parsed.Path); strings.Contains(base, ".") && base != "." {
			return base
		}
	}

	return "download"
}

func isZip(name, contentType string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip") || strings.Contains(contentType, "zip")
}

// expandZip extracts archivePath into a sibling directory named after the
// archive, dropping macOS resource forks and dotfiles, then removes the
// archive. Returns the paths of the extracted files.
func expandZip(archivePath, dir string) ([]string, error) {
	extractDir := filepath.Join(dir, strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath)))

	created, err := extractArchive(archivePath, extractDir)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(archivePath); err != nil {
		return nil, err
	}

	return created, nil
}

func extractArchive(archivePath, extractDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, err
	}

	var created []string
	for _, file := range r.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(file.Name, "__MACOSX/") || strings.HasPrefix(filepath.Base(file.Name), ".") {
			continue
		}

		target := filepath.Join(extractDir, filepath.FromSlash(file.Name))
		rel, err := filepath.Rel(extractDir, target)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, grabdoc.Errorf(grabdoc.EINVALID, "archive entry escapes extraction directory: %s", file.Name)
		}

		if err := extractZipFile(file, target); err != nil {
			return nil, err
		}
		created = append(created, target)
	}

	return created, nil
}

func extractZipFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
