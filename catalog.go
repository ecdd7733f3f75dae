package tilemosaic

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/tilemosaic/imageutil"
)

// DefaultExtensions are the tile file extensions recognized when none are
// configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// DefaultLoadWorkers is the number of tile files decoded concurrently.
const DefaultLoadWorkers = 4

// Tile is an immutable square block of RGB pixels with its mean color.
// Tiles are owned by their Catalog; everything else refers to them by ID.
type Tile struct {
	ID   int
	Name string // source file name, empty for in-memory tiles
	Size int
	Pix  []uint8 // Size*Size*3 interleaved RGB, row-major
	Mean Color
}

// Catalog is the fixed pool of tiles a mosaic is built from. Tile ids are
// dense indices 0..Len()-1.
type Catalog struct {
	tiles    []Tile
	tileSize int
}

// LoadOptions controls how LoadCatalog reads a tile directory.
type LoadOptions struct {
	// TileSize forces every tile to TileSize x TileSize. Zero takes the
	// width of the first decoded tile.
	TileSize int
	// Extensions filters directory entries (case-insensitive, with dot).
	Extensions []string
	// Workers bounds concurrent decoding. Values below 1 mean
	// DefaultLoadWorkers.
	Workers int
	Logger  *log.Logger
}

// LoadCatalog decodes every recognized tile file in dir, in lexical file
// name order. Files that fail to decode are logged and skipped. It
// returns ErrNoTilesFound if nothing usable remains.
func LoadCatalog(dir string, opts LoadOptions) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultLoadWorkers
	}

	paths, err := listTileFiles(dir, exts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTilesFound, err)
	}

	decoded := make([]*imageutil.RGBAImage, len(paths))
	failures := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			decoded[i], failures[i] = imageutil.LoadImage(path)
			return nil
		})
	}
	_ = g.Wait()

	var (
		names  []string
		images []image.Image
	)
	for i, path := range paths {
		if failures[i] != nil {
			logger.Printf("Skipping tile %s: %v", path, failures[i])
			continue
		}
		names = append(names, filepath.Base(path))
		images = append(images, decoded[i])
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s (%d candidate files)", ErrNoTilesFound, dir, len(paths))
	}

	c := buildCatalog(names, images, opts.TileSize, logger)
	logger.Printf("Loaded %d tiles of %dx%d from %s, mean color %s",
		c.Len(), c.tileSize, c.tileSize, dir, c.Mean().Hex())
	return c, nil
}

// NewCatalog builds a catalog from in-memory images. tileSize follows the
// same rule as LoadOptions.TileSize.
func NewCatalog(images []image.Image, tileSize int) (*Catalog, error) {
	if len(images) == 0 {
		return nil, ErrNoTilesFound
	}
	return buildCatalog(make([]string, len(images)), images, tileSize, log.Default()), nil
}

func buildCatalog(names []string, images []image.Image, tileSize int, logger *log.Logger) *Catalog {
	override := tileSize > 0
	if !override {
		tileSize = images[0].Bounds().Dx()
	}

	c := &Catalog{
		tiles:    make([]Tile, len(images)),
		tileSize: tileSize,
	}
	for id, img := range images {
		rgba := imageutil.RGBAImageFromImage(img)
		if rgba.Width() != tileSize || rgba.Height() != tileSize {
			if !override {
				logger.Printf("Tile %d (%s) is %dx%d, resampling to %dx%d",
					id, names[id], rgba.Width(), rgba.Height(), tileSize, tileSize)
			}
			rgba = imageutil.ResizeSquare(rgba, tileSize, imageutil.InterpolationArea)
		}
		c.tiles[id] = newTile(id, names[id], rgba)
	}
	return c
}

func newTile(id int, name string, img *imageutil.RGBAImage) Tile {
	side := img.Width()
	pix := make([]uint8, 0, side*side*3)
	for y := 0; y < side; y++ {
		row := img.Pix[img.PixOffset(0, y):]
		for x := 0; x < side; x++ {
			pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return Tile{
		ID:   id,
		Name: name,
		Size: side,
		Pix:  pix,
		Mean: meanColor(pix),
	}
}

// listTileFiles returns the regular files in dir whose extension is in
// exts, sorted by name.
func listTileFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Len returns the number of tiles.
func (c *Catalog) Len() int { return len(c.tiles) }

// TileSize returns the common side length of every tile.
func (c *Catalog) TileSize() int { return c.tileSize }

// Tile returns the tile with the given id.
func (c *Catalog) Tile(id int) *Tile { return &c.tiles[id] }

// Mean returns the average of all tile means.
func (c *Catalog) Mean() Color {
	var sum Color
	for _, t := range c.tiles {
		sum.R += t.Mean.R
		sum.G += t.Mean.G
		sum.B += t.Mean.B
	}
	n := float64(len(c.tiles))
	return Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}
