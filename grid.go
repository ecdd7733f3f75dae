package tilemosaic

import (
	"fmt"
	"image"
	"log"
	"math"

	"github.com/wbrown/tilemosaic/imageutil"
)

// Grid is the preprocessed reference: the rescaled and cropped image and
// the mean color of each TileSize x TileSize cell in row-major order.
type Grid struct {
	Rows, Cols int
	TileSize   int
	Targets    []Color // Targets[row*Cols+col]
	Image      *imageutil.RGBAImage
	Scale      float64 // 1 when the reference was not rescaled
}

// Size returns the number of cells.
func (g *Grid) Size() int { return g.Rows * g.Cols }

// Target returns the target color of cell k.
func (g *Grid) Target(k int) Color { return g.Targets[k] }

// RescaleFactor decides whether a width x height reference must shrink so
// that the cells it needs number at most half the catalog. That keeps a
// spare pool at least as large as the grid after the initial draw. needed
// is ceil(width*height / tileSize^2).
func RescaleFactor(width, height, tileSize, catalogSize int) (scale float64, needed int, rescale bool) {
	area := width * height
	cell := tileSize * tileSize
	needed = (area + cell - 1) / cell
	half := float64(catalogSize) / 2
	if float64(needed) > half {
		return math.Sqrt(half / float64(needed)), needed, true
	}
	return 1, needed, false
}

// BuildGrid rescales ref if the catalog is too small for it, crops it
// from the top-left to whole multiples of tileSize and computes the
// per-cell target colors. It returns ErrReferenceTooSmall if no whole cell
// remains.
func BuildGrid(ref image.Image, tileSize, catalogSize int, logger *log.Logger) (*Grid, error) {
	if logger == nil {
		logger = log.Default()
	}
	if tileSize < 1 {
		return nil, fmt.Errorf("tilemosaic: tile size must be positive, got %d", tileSize)
	}

	img := imageutil.RGBAImageFromImage(ref)
	w, h := img.Width(), img.Height()

	scale, needed, rescale := RescaleFactor(w, h, tileSize, catalogSize)
	if rescale {
		sw, sh := int(float64(w)*scale), int(float64(h)*scale)
		logger.Printf("Rescaling reference by %.6f to %dx%d: %d tiles available, %d needed",
			scale, sw, sh, catalogSize, needed)
		if sw < 1 || sh < 1 {
			return nil, fmt.Errorf("%w: %dx%d rescaled to %dx%d", ErrReferenceTooSmall, w, h, sw, sh)
		}
		img = imageutil.Downscale(img, sw, sh)
		w, h = sw, sh
	}

	cols, rows := w/tileSize, h/tileSize
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %dx%d with %dpx tiles", ErrReferenceTooSmall, w, h, tileSize)
	}
	if cw, ch := cols*tileSize, rows*tileSize; cw != w || ch != h {
		img = img.Crop(image.Rect(0, 0, cw, ch))
	}

	g := &Grid{
		Rows:     rows,
		Cols:     cols,
		TileSize: tileSize,
		Targets:  make([]Color, 0, rows*cols),
		Image:    img,
		Scale:    scale,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.Targets = append(g.Targets, blockMean(img, col*tileSize, row*tileSize, tileSize))
		}
	}
	logger.Printf("Grid is %d rows x %d cols (%d cells)", rows, cols, g.Size())
	return g, nil
}
