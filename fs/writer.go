// Package fs persists extraction outputs: the per-resource metadata
// document and the extracted article files.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/grabdoc"
)

// WriteArticle writes content as the main article document inside dir and
// returns the path of the file written.
func WriteArticle(dir, content string) (string, error) {
	return WriteDoc(dir, grabdoc.ArticleFile, content)
}

// WriteDoc writes a named document inside dir, creating dir if needed,
// and returns the full path of the file written.
func WriteDoc(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
