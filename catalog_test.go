package tilemosaic

import (
	"bytes"
	"image"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/tilemosaic/imageutil"
)

func TestLoadCatalog(t *testing.T) {
	dir := writeTileDir(t, 4, red, green, blue)

	c, err := LoadCatalog(dir, LoadOptions{Logger: quietLogger()})
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, 4, c.TileSize())
	for id, want := range []imageutil.RGB{red, green, blue} {
		tile := c.Tile(id)
		assert.Equal(t, id, tile.ID)
		assert.Equal(t, string(rune('a'+id))+".png", tile.Name)
		assert.Equal(t, 4, tile.Size)
		assert.Len(t, tile.Pix, 4*4*3)
		assert.Equal(t, ColorFromRGB(want), tile.Mean)
	}
	assert.Equal(t, Color{R: 85, G: 85, B: 85}, c.Mean())
}

func TestLoadCatalogSkipsUndecodableFiles(t *testing.T) {
	dir := writeTileDir(t, 2, red, green)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	var logs bytes.Buffer
	c, err := LoadCatalog(dir, LoadOptions{Logger: log.New(&logs, "", 0), Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Contains(t, logs.String(), "Skipping tile")
	assert.Contains(t, logs.String(), "broken.jpg")
	assert.NotContains(t, logs.String(), "notes.txt")
	assert.Contains(t, logs.String(), "Loaded 2 tiles of 2x2")
}

func TestLoadCatalogExtensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "UPPER.PNG"), imageutil.CreateSolidImage(2, 2, red))
	writePNG(t, filepath.Join(dir, "lower.png"), imageutil.CreateSolidImage(2, 2, blue))

	c, err := LoadCatalog(dir, LoadOptions{Logger: quietLogger()})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "UPPER.PNG", c.Tile(0).Name)
	assert.Equal(t, "lower.png", c.Tile(1).Name)

	// "jpg" is normalized to ".jpg", which excludes both pngs
	_, err = LoadCatalog(dir, LoadOptions{Logger: quietLogger(), Extensions: []string{"jpg"}})
	require.ErrorIs(t, err, ErrNoTilesFound)
}

func TestLoadCatalogNoTiles(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadCatalog(t.TempDir(), LoadOptions{Logger: quietLogger()})
		require.ErrorIs(t, err, ErrNoTilesFound)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope"), LoadOptions{Logger: quietLogger()})
		require.ErrorIs(t, err, ErrNoTilesFound)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nothing decodes", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.png"), []byte("junk"), 0o644))
		_, err := LoadCatalog(dir, LoadOptions{Logger: quietLogger()})
		require.ErrorIs(t, err, ErrNoTilesFound)
		assert.Contains(t, err.Error(), "1 candidate files")
	})
}

func TestLoadCatalogTileSizeOverride(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), imageutil.CreateSolidImage(8, 8, red))
	writePNG(t, filepath.Join(dir, "b.png"), imageutil.CreateSolidImage(6, 3, green))

	var logs bytes.Buffer
	c, err := LoadCatalog(dir, LoadOptions{TileSize: 4, Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, 4, c.TileSize())
	for id := 0; id < c.Len(); id++ {
		assert.Equal(t, 4, c.Tile(id).Size)
		assert.Len(t, c.Tile(id).Pix, 4*4*3)
	}
	assert.Equal(t, ColorFromRGB(red), c.Tile(0).Mean)
	assert.Equal(t, ColorFromRGB(green), c.Tile(1).Mean)
	assert.NotContains(t, logs.String(), "resampling")
}

func TestNewCatalogResamplesMismatchedTiles(t *testing.T) {
	c, err := NewCatalog([]image.Image{
		imageutil.CreateSolidImage(4, 4, red),
		imageutil.CreateSolidImage(10, 6, blue),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, c.TileSize())
	assert.Equal(t, 4, c.Tile(1).Size)
	assert.Len(t, c.Tile(1).Pix, 4*4*3)
	assert.Equal(t, ColorFromRGB(blue), c.Tile(1).Mean)
}

func TestNewCatalogEmpty(t *testing.T) {
	_, err := NewCatalog(nil, 0)
	require.ErrorIs(t, err, ErrNoTilesFound)
}

func TestTilePixelsAreRowMajorRGB(t *testing.T) {
	img := imageutil.NewRGBAImage(2, 2)
	img.SetRGB(0, 0, red)
	img.SetRGB(1, 0, green)
	img.SetRGB(0, 1, blue)
	img.SetRGB(1, 1, white)

	c, err := NewCatalog([]image.Image{img}, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}, c.Tile(0).Pix)
	assert.Equal(t, Color{R: 127.5, G: 127.5, B: 127.5}, c.Tile(0).Mean)
}
