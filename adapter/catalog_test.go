package adapter_test

import (
	"context"
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Extract_catalogs_without_files(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		url          string
		resourceType string
	}{
		{"youtube link", "https://youtu.be/abc", grabdoc.TypeYouTube},
		{"notion link", "https://www.notion.so/page", grabdoc.TypeNotion},
		{"drive link", "https://drive.google.com/file/d/x/view", grabdoc.TypeGoogleDrive},
		{"anything else", "https://example.com/tool", grabdoc.TypeExternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &adapter.Catalog{}

			result, err := c.Extract(context.Background(), tt.url, "", t.TempDir())

			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, tt.resourceType, result.ResourceType)
			assert.Empty(t, result.FilesCreated)
			assert.Equal(t, "Catalogued only", result.Note)
		})
	}
}

func TestCatalog_CanHandle_always_matches(t *testing.T) {
	t.Parallel()

	c := &adapter.Catalog{}

	assert.True(t, c.CanHandle("https://anything.example", ""))
	assert.True(t, c.CanHandle("", ""))
}
