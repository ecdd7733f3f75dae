package tilemosaic

import (
	"image"

	"github.com/wbrown/tilemosaic/imageutil"
)

// Buffer is a rendered mosaic: Width x Height interleaved 8-bit RGB.
type Buffer struct {
	Width, Height int
	Pix           []uint8 // len = Width*Height*3
}

// Render composes the mosaic for assignment: the tile of cell k is copied
// verbatim into row k/cols, column k%cols. The same assignment and tiles
// always produce the same bytes.
func Render(catalog *Catalog, assignment []int, rows, cols int) *Buffer {
	side := catalog.TileSize()
	b := &Buffer{
		Width:  cols * side,
		Height: rows * side,
	}
	b.Pix = make([]uint8, b.Width*b.Height*3)

	stride := b.Width * 3
	rowBytes := side * 3
	for k, id := range assignment {
		tile := catalog.Tile(id)
		x0, y0 := (k%cols)*side, (k/cols)*side
		for y := 0; y < side; y++ {
			dst := (y0+y)*stride + x0*3
			copy(b.Pix[dst:dst+rowBytes], tile.Pix[y*rowBytes:(y+1)*rowBytes])
		}
	}
	return b
}

// Image converts the buffer to an opaque RGBA image for encoding.
func (b *Buffer) Image() *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Width*3:]
		dst := img.Pix[img.PixOffset(0, y):]
		for x := 0; x < b.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) imageutil.RGB {
	i := (y*b.Width + x) * 3
	return imageutil.RGB{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}
