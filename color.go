package tilemosaic

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/tilemosaic/imageutil"
)

// Color is a mean color with channels on the 0-255 scale. Means are kept
// as floats so averaging a block loses no precision.
type Color struct {
	R, G, B float64
}

// SquaredDistance returns the squared Euclidean distance between c and
// other on the raw 0-255 channel scale. This is the per-cell error used
// throughout the optimizer.
func (c Color) SquaredDistance(other Color) float64 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return dr*dr + dg*dg + db*db
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped().Hex()
}

// ColorFromRGB converts an 8-bit color to a Color.
func ColorFromRGB(rgb imageutil.RGB) Color {
	return Color{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
}

// meanColor averages the RGB channels of an interleaved 3-channel pixel
// slice.
func meanColor(pix []uint8) Color {
	n := len(pix) / 3
	if n == 0 {
		return Color{}
	}
	var r, g, b uint64
	for i := 0; i+2 < len(pix); i += 3 {
		r += uint64(pix[i])
		g += uint64(pix[i+1])
		b += uint64(pix[i+2])
	}
	return Color{
		R: float64(r) / float64(n),
		G: float64(g) / float64(n),
		B: float64(b) / float64(n),
	}
}

// blockMean averages the side x side block of img whose top-left corner
// is (x0, y0).
func blockMean(img *imageutil.RGBAImage, x0, y0, side int) Color {
	var r, g, b uint64
	for y := y0; y < y0+side; y++ {
		row := img.Pix[img.PixOffset(x0, y):]
		for x := 0; x < side; x++ {
			p := row[x*4 : x*4+3]
			r += uint64(p[0])
			g += uint64(p[1])
			b += uint64(p[2])
		}
	}
	n := float64(side * side)
	return Color{R: float64(r) / n, G: float64(g) / n, B: float64(b) / n}
}
