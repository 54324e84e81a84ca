package grabdoc_test

import (
	"context"
	"testing"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilteredHook_ShouldRun(t *testing.T) {
	t.Parallel()

	t.Run("delegates when resource type is in the set", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Hook{
			ShouldRunFn: func(_ context.Context, _ *grabdoc.Metadata, _ string) (bool, error) {
				return true, nil
			},
		}
		h := grabdoc.NewFilteredHook(inner, []string{"substack", "youtube"})

		ok, err := h.ShouldRun(context.Background(), &grabdoc.Metadata{ResourceType: "substack"}, "/tmp/out")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("denies without consulting inner hook when type is outside the set", func(t *testing.T) {
		t.Parallel()

		called := false
		inner := &mock.Hook{
			ShouldRunFn: func(_ context.Context, _ *grabdoc.Metadata, _ string) (bool, error) {
				called = true
				return true, nil
			},
		}
		h := grabdoc.NewFilteredHook(inner, []string{"substack"})

		ok, err := h.ShouldRun(context.Background(), &grabdoc.Metadata{ResourceType: "youtube"}, "/tmp/out")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, called)
	})

	t.Run("denies nil metadata", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Hook{
			ShouldRunFn: func(_ context.Context, _ *grabdoc.Metadata, _ string) (bool, error) {
				return true, nil
			},
		}
		h := grabdoc.NewFilteredHook(inner, []string{"substack"})

		ok, err := h.ShouldRun(context.Background(), nil, "/tmp/out")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("propagates inner decision to skip", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Hook{
			ShouldRunFn: func(_ context.Context, _ *grabdoc.Metadata, _ string) (bool, error) {
				return false, nil
			},
		}
		h := grabdoc.NewFilteredHook(inner, []string{"substack"})

		ok, err := h.ShouldRun(context.Background(), &grabdoc.Metadata{ResourceType: "substack"}, "/tmp/out")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFilteredHook_Run(t *testing.T) {
	t.Parallel()

	t.Run("forwards to inner hook", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Hook{
			RunFn: func(_ context.Context, _ *grabdoc.Metadata, dir string) (*grabdoc.HookResult, error) {
				return &grabdoc.HookResult{Success: true, FilesCreated: []string{dir + "/summary.md"}}, nil
			},
		}
		h := grabdoc.NewFilteredHook(inner, []string{"substack"})

		result, err := h.Run(context.Background(), &grabdoc.Metadata{ResourceType: "substack"}, "/tmp/out")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, []string{"/tmp/out/summary.md"}, result.FilesCreated)
	})
}
