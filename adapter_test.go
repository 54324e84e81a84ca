package grabdoc_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func substringAdapter(resourceType, substr string) *mock.Adapter {
	return &mock.Adapter{
		ResourceTypeFn: func() string { return resourceType },
		CanHandleFn: func(url, _ string) bool {
			return strings.Contains(url, substr)
		},
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns first adapter whose CanHandle matches", func(t *testing.T) {
		t.Parallel()

		r := &grabdoc.Registry{}
		r.Register(substringAdapter("substack", "substack.com"))
		r.Register(substringAdapter("youtube", "youtube.com"))

		a, err := r.Get("https://example.substack.com/p/post", "substack")

		require.NoError(t, err)
		assert.Equal(t, "substack", a.ResourceType())
	})

	t.Run("registration order decides overlapping claims", func(t *testing.T) {
		t.Parallel()

		// Both adapters claim any .com URL; the earlier one must win.
		r := &grabdoc.Registry{}
		r.Register(substringAdapter("first", ".com"))
		r.Register(substringAdapter("second", ".com"))

		a, err := r.Get("https://example.com", "web")

		require.NoError(t, err)
		assert.Equal(t, "first", a.ResourceType())
	})

	t.Run("specific adapter registered before catch-all wins", func(t *testing.T) {
		t.Parallel()

		r := &grabdoc.Registry{}
		r.Register(substringAdapter("youtube", "youtube.com"))
		r.Register(substringAdapter("web", ""))

		a, err := r.Get("https://www.youtube.com/watch?v=abc", "youtube")
		require.NoError(t, err)
		assert.Equal(t, "youtube", a.ResourceType())

		a, err = r.Get("https://example.com/post", "web")
		require.NoError(t, err)
		assert.Equal(t, "web", a.ResourceType())
	})

	t.Run("returns ENOTFOUND when no adapter matches", func(t *testing.T) {
		t.Parallel()

		r := &grabdoc.Registry{}
		r.Register(substringAdapter("substack", "substack.com"))

		_, err := r.Get("https://example.com", "web")

		require.Error(t, err)
		assert.Equal(t, grabdoc.ENOTFOUND, grabdoc.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for empty registry", func(t *testing.T) {
		t.Parallel()

		r := &grabdoc.Registry{}

		_, err := r.Get("https://example.com", "web")

		require.Error(t, err)
		assert.Equal(t, grabdoc.ENOTFOUND, grabdoc.ErrorCode(err))
	})
}

func TestRegistry_Len(t *testing.T) {
	t.Parallel()

	r := &grabdoc.Registry{}
	assert.Equal(t, 0, r.Len())

	r.Register(substringAdapter("web", ""))
	r.Register(substringAdapter("web", ""))

	assert.Equal(t, 2, r.Len())
}
