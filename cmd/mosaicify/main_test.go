package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/tilemosaic"
	"github.com/wbrown/tilemosaic/imageutil"
)

func fixture(t *testing.T) (ref, tiles string) {
	t.Helper()
	dir := t.TempDir()
	tiles = filepath.Join(dir, "tiles")
	require.NoError(t, os.Mkdir(tiles, 0o755))
	colors := []imageutil.RGB{
		{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 255},
		{}, {R: 255, G: 255, B: 255}, {G: 255, B: 255}, {R: 255, B: 255},
	}
	for i, c := range colors {
		path := filepath.Join(tiles, string(rune('a'+i))+".png")
		require.NoError(t, imageutil.SaveImage(imageutil.CreateSolidImage(2, 2, c), path))
	}
	ref = filepath.Join(dir, "portrait.png")
	require.NoError(t, imageutil.SaveImage(imageutil.CreateColorBarsImage(4, 4), ref))
	return ref, tiles
}

func TestRun(t *testing.T) {
	ref, tiles := fixture(t)
	cfg := tilemosaic.DefaultConfig()
	cfg.Reference = ref
	cfg.Tiles = tiles
	cfg.Iterations = 3
	cfg.Seed = 17

	var out, logs bytes.Buffer
	require.NoError(t, run(cfg, strings.NewReader(""), &out, log.New(&logs, "", 0)))

	output := filepath.Join(filepath.Dir(ref), "tyled-portrait.png")
	img, err := imageutil.LoadImage(output)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 4, img.Height())

	assert.Contains(t, out.String(), "seed: 17")
	assert.Contains(t, out.String(), "grid: 2 rows x 2 cols of 2px tiles (4 cells, 8 tiles)")
	assert.Contains(t, out.String(), "Output written to "+output)
	assert.Equal(t, 3, strings.Count(logs.String(), "Iteration "))
}

func TestRunInteractiveAndFrames(t *testing.T) {
	ref, tiles := fixture(t)
	cfg := tilemosaic.DefaultConfig()
	cfg.Reference = ref
	cfg.Tiles = tiles
	cfg.Output = filepath.Join(t.TempDir(), "out.jpg")
	cfg.Iterations = 2
	cfg.Interactive = true
	cfg.FramesDir = filepath.Join(t.TempDir(), "frames")

	var out bytes.Buffer
	logger := log.New(io.Discard, "", 0)
	require.NoError(t, run(cfg, strings.NewReader("\n\n"), &out, logger))
	assert.Equal(t, 2, strings.Count(out.String(), "press Enter"))
	assert.FileExists(t, cfg.Output)
	assert.FileExists(t, filepath.Join(cfg.FramesDir, "frame-0002.png"))

	// Input ends before the last iteration
	cfg.Iterations = 3
	err := run(cfg, strings.NewReader("\n"), &out, logger)
	require.ErrorIs(t, err, tilemosaic.ErrObserverClosed)
}

func TestRunErrors(t *testing.T) {
	ref, tiles := fixture(t)
	logger := log.New(io.Discard, "", 0)

	cfg := tilemosaic.DefaultConfig()
	cfg.Tiles = tiles
	require.ErrorIs(t, run(cfg, nil, io.Discard, logger), tilemosaic.ErrInvalidConfig)

	cfg.Reference = ref
	cfg.Tiles = filepath.Join(t.TempDir(), "empty")
	require.ErrorIs(t, run(cfg, nil, io.Discard, logger), tilemosaic.ErrNoTilesFound)
}

func TestDefaultOutput(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":              "tyled-photo.png",
		"in/dir/holiday.jpeg":    filepath.Join("in", "dir", "tyled-holiday.png"),
		"/abs/path/pic.PNG":      "/abs/path/tyled-pic.png",
		"noext":                  "tyled-noext.png",
		"archive.tar.gz":         "tyled-archive.tar.png",
		"dotted.dir/picture.png": filepath.Join("dotted.dir", "tyled-picture.png"),
	}
	for in, want := range tests {
		assert.Equal(t, want, defaultOutput(in), in)
	}
}
