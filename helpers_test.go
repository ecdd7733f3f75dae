package tilemosaic

import (
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/tilemosaic/imageutil"
)

var (
	red     = imageutil.RGB{R: 255}
	green   = imageutil.RGB{G: 255}
	blue    = imageutil.RGB{B: 255}
	white   = imageutil.RGB{R: 255, G: 255, B: 255}
	black   = imageutil.RGB{}
	yellow  = imageutil.RGB{R: 255, G: 255}
	cyan    = imageutil.RGB{G: 255, B: 255}
	magenta = imageutil.RGB{R: 255, B: 255}
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// solidCatalog builds an in-memory catalog with one side x side solid
// tile per color, ids in argument order.
func solidCatalog(t *testing.T, side int, colors ...imageutil.RGB) *Catalog {
	t.Helper()
	images := make([]image.Image, len(colors))
	for i, c := range colors {
		images[i] = imageutil.CreateSolidImage(side, side, c)
	}
	c, err := NewCatalog(images, 0)
	require.NoError(t, err)
	return c
}

// targetGrid builds a grid directly from target colors.
func targetGrid(rows, cols, side int, targets ...imageutil.RGB) *Grid {
	g := &Grid{Rows: rows, Cols: cols, TileSize: side, Scale: 1}
	for _, c := range targets {
		g.Targets = append(g.Targets, ColorFromRGB(c))
	}
	return g
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// writeTileDir writes one solid tile per color as a.png, b.png, ... and returns the
// directory.
func writeTileDir(t *testing.T, side int, colors ...imageutil.RGB) string {
	t.Helper()
	dir := t.TempDir()
	for i, c := range colors {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, name, imageutil.CreateSolidImage(side, side, c))
	}
	return dir
}

// requirePartition checks that the assignment holds distinct ids and
// that it and the pool split the catalog exactly.
func requirePartition(t *testing.T, catalogSize int, assignment, available []int) {
	t.Helper()
	seen := make(map[int]string, catalogSize)
	for _, id := range assignment {
		require.NotContains(t, seen, id, "tile %d assigned twice", id)
		seen[id] = "assigned"
	}
	for _, id := range available {
		require.NotContains(t, seen, id, "tile %d both %s and available", id, seen[id])
		seen[id] = "available"
	}
	require.Len(t, seen, catalogSize)
	for id := 0; id < catalogSize; id++ {
		require.Contains(t, seen, id)
	}
}

// scriptedSource replays fixed Intn results and leaves Shuffle as the
// identity, so tests control every move.
type scriptedSource struct {
	t     *testing.T
	draws []int
}

func (s *scriptedSource) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.draws, "unexpected Intn(%d)", n)
	v := s.draws[0]
	s.draws = s.draws[1:]
	require.Less(s.t, v, n, "scripted draw out of range")
	return v
}

func (s *scriptedSource) Shuffle(int, func(i, j int)) {}
