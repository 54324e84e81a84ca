package ytdlp_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/ytdlp"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestClient_Probe(t *testing.T) {
	t.Parallel()

	t.Run("succeeds when the binary runs", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", "#!/bin/sh\necho 2025.08.01\n")

		c := ytdlp.NewClient(ytdlp.WithBin(bin))
		require.NoError(t, c.Probe(context.Background()))
	})

	t.Run("fails when the binary is missing", func(t *testing.T) {
		t.Parallel()

		c := ytdlp.NewClient(ytdlp.WithBin(filepath.Join(t.TempDir(), "missing")))

		err := c.Probe(context.Background())
		require.Error(t, err)
		assert.Equal(t, grabdoc.EUNAVAILABLE, grabdoc.ErrorCode(err))
		assert.Equal(t, "yt-dlp is not installed or not working", grabdoc.ErrorMessage(err))
	})
}

func TestClient_FetchVideo(t *testing.T) {
	t.Parallel()

	t.Run("returns metadata and the parsed transcript", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", `#!/bin/sh
dir=""
prev=""
for a in "$@"; do
	[ "$prev" = "--paths" ] && dir="$a"
	prev="$a"
done
cat > "$dir/clip.en.vtt" <<'EOF'
WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.000
hello world

00:00:01.500 --> 00:00:03.500
hello world

00:00:03.500 --> 00:00:05.000
and goodbye
EOF
printf '%s' '{"title":"A Video","channel":"A Channel","upload_date":"20250315","duration_string":"12:34","description":"About things."}'
`)

		dir := t.TempDir()
		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		video, err := c.FetchVideo(context.Background(), "https://www.youtube.com/watch?v=abc", dir)
		require.NoError(t, err)

		assert.Equal(t, "A Video", video.Title)
		assert.Equal(t, "A Channel", video.Channel)
		assert.Equal(t, "20250315", video.UploadDate)
		assert.Equal(t, "12:34", video.Duration)
		assert.Equal(t, "About things.", video.Description)
		assert.Equal(t, "hello world\nand goodbye", video.Transcript)
	})

	t.Run("falls back to uploader when channel is missing", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", `#!/bin/sh
printf '%s' '{"title":"T","uploader":"Solo Uploader"}'
`)

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		video, err := c.FetchVideo(context.Background(), "https://youtu.be/abc", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "Solo Uploader", video.Channel)
		assert.Empty(t, video.Transcript)
	})

	t.Run("times out when yt-dlp hangs", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", "#!/bin/sh\nsleep 5\n")

		c := ytdlp.NewClient(ytdlp.WithBin(bin), ytdlp.WithTimeout(100*time.Millisecond))

		_, err := c.FetchVideo(context.Background(), "https://youtu.be/abc", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, grabdoc.EUNAVAILABLE, grabdoc.ErrorCode(err))
		assert.Equal(t, "yt-dlp timed out", grabdoc.ErrorMessage(err))
	})

	t.Run("carries yt-dlp stderr into the error", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", `#!/bin/sh
echo "ERROR: Video unavailable" >&2
exit 1
`)

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		_, err := c.FetchVideo(context.Background(), "https://youtu.be/abc", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, grabdoc.EINTERNAL, grabdoc.ErrorCode(err))
		assert.Equal(t, "yt-dlp failed: ERROR: Video unavailable", grabdoc.ErrorMessage(err))
	})
}

func TestClient_ListVideos(t *testing.T) {
	t.Parallel()

	t.Run("parses one JSON document per video", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", `#!/bin/sh
printf '%s\n' '{"id":"vid1","title":"Video One","upload_date":"20250201","url":"https://www.youtube.com/watch?v=vid1"}'
printf '%s\n' '{"id":"vid2","title":"Video Two","upload_date":"20250115","webpage_url":"https://www.youtube.com/watch?v=vid2"}'
`)

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		videos, err := c.ListVideos(context.Background(), "https://www.youtube.com/@test", "")
		require.NoError(t, err)
		require.Len(t, videos, 2)

		assert.Equal(t, "vid1", videos[0].ID)
		assert.Equal(t, "https://www.youtube.com/watch?v=vid1", videos[0].URL)
		assert.Equal(t, "https://www.youtube.com/watch?v=vid2", videos[1].URL)
	})

	t.Run("constructs a watch URL from the id", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", `#!/bin/sh
printf '%s\n' '{"id":"vid3","title":"Three"}'
`)

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		videos, err := c.ListVideos(context.Background(), "https://www.youtube.com/@test", "")
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, "https://www.youtube.com/watch?v=vid3", videos[0].URL)
	})

	t.Run("returns empty on listing failure", func(t *testing.T) {
		t.Parallel()

		bin := writeScript(t, t.TempDir(), "yt-dlp", "#!/bin/sh\necho error >&2\nexit 1\n")

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		videos, err := c.ListVideos(context.Background(), "https://www.youtube.com/@test", "")
		require.NoError(t, err)
		assert.Empty(t, videos)
		assert.NotNil(t, videos)
	})

	t.Run("passes the date window to yt-dlp", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		argsFile := filepath.Join(dir, "args.txt")
		bin := writeScript(t, dir, "yt-dlp", fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n", argsFile))

		c := ytdlp.NewClient(ytdlp.WithBin(bin))

		_, err := c.ListVideos(context.Background(), "https://www.youtube.com/@test", "20250101")
		require.NoError(t, err)

		args, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Contains(t, string(args), "--dateafter 20250101")
	})
}
