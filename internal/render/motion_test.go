package render_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clario/backend/internal/model"
	"clario/backend/internal/render"
)

// writeScript drops an executable shell script into dir and returns its path.
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "render.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommandRenderer_Render(t *testing.T) {
	t.Run("Writes the file and returns its URL", func(t *testing.T) {
		dir := t.TempDir()
		videosDir := filepath.Join(dir, "videos")
		// $1 is the params JSON, $2 the output path. Echo the params into the
		// file so the test can check argument order.
		script := writeScript(t, dir, `printf '%s' "$1" > "$2"`)

		renderer := render.NewCommandRenderer(script, videosDir)
		params := render.DefaultParams()
		params.Title = "Projectile Motion"

		videoURL, err := renderer.Render(context.Background(), params)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(videoURL, "/videos/motion-"), "got %q", videoURL)
		assert.True(t, strings.HasSuffix(videoURL, ".mp4"), "got %q", videoURL)

		written, err := os.ReadFile(filepath.Join(videosDir, strings.TrimPrefix(videoURL, "/videos/")))
		require.NoError(t, err)
		var got model.MotionParams
		require.NoError(t, json.Unmarshal(written, &got))
		assert.Equal(t, params, got)
	})

	t.Run("Distinct filenames per render", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, `: > "$2"`)
		renderer := render.NewCommandRenderer(script, filepath.Join(dir, "videos"))

		first, err := renderer.Render(context.Background(), render.DefaultParams())
		require.NoError(t, err)
		second, err := renderer.Render(context.Background(), render.DefaultParams())
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Failing command surfaces its output", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, `echo "composition blew up" >&2; exit 1`)
		renderer := render.NewCommandRenderer(script, filepath.Join(dir, "videos"))

		_, err := renderer.Render(context.Background(), render.DefaultParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "composition blew up")
	})

	t.Run("Command that writes nothing is an error", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, `exit 0`)
		renderer := render.NewCommandRenderer(script, filepath.Join(dir, "videos"))

		_, err := renderer.Render(context.Background(), render.DefaultParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no output file")
	})

	t.Run("Empty command is rejected", func(t *testing.T) {
		renderer := render.NewCommandRenderer("", t.TempDir())
		_, err := renderer.Render(context.Background(), render.DefaultParams())
		assert.Error(t, err)
	})
}

func TestDefaultParams(t *testing.T) {
	params := render.DefaultParams()
	assert.Equal(t, "Motion in 1D", params.Title)
	assert.Equal(t, "linear", params.MotionType)
	assert.Zero(t, params.InitialVelocity)
	assert.Equal(t, float64(2), params.Acceleration)
	assert.Equal(t, float64(45), params.Angle)
	assert.True(t, params.ShowGraph)
}
