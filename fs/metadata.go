package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/grabdoc"
)

// WriteMetadata writes meta as metadata.json inside dir, creating dir if
// needed. The document is indented and ends with a newline so it diffs
// cleanly under version control.
func WriteMetadata(dir string, meta *grabdoc.Metadata) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(filepath.Join(dir, grabdoc.MetadataFile), data, 0644)
}

// ReadMetadata reads the metadata.json inside dir. A missing file is an
// ENOTFOUND error; the caller decides whether that is a problem.
func ReadMetadata(dir string) (*grabdoc.Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, grabdoc.MetadataFile))
	if os.IsNotExist(err) {
		return nil, grabdoc.Errorf(grabdoc.ENOTFOUND, "no metadata found in %s", dir)
	}
	if err != nil {
		return nil, err
	}

	var meta grabdoc.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, grabdoc.Errorf(grabdoc.EINVALID, "failed to parse metadata in %s: %v", dir, err)
	}

	return &meta, nil
}
