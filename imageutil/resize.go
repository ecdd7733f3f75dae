package imageutil

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality resampling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// MaxSquare returns the largest square centered in r.
func MaxSquare(r image.Rectangle) image.Rectangle {
	size := r.Size()
	side := min(size.X, size.Y)
	offset := image.Pt((size.X-side)/2, (size.Y-side)/2)
	return image.Rect(0, 0, side, side).Add(r.Min).Add(offset)
}

// ResizeSquare center-crops img to a square and resamples it to
// side x side. Images that are already side x side are returned as a copy.
func ResizeSquare(img *RGBAImage, side int, interp Interpolation) *RGBAImage {
	if img.Width() == side && img.Height() == side {
		return img.Clone()
	}
	square := img
	if img.Width() != img.Height() {
		square = img.Crop(MaxSquare(img.Bounds()))
	}
	return Resize(square, side, side, interp)
}

// Downscale shrinks img to width x height with a Lanczos3 filter. It is
// meant for large reductions of photographic input where Catmull-Rom
// aliases.
func Downscale(img *RGBAImage, width, height int) *RGBAImage {
	out := resize.Resize(uint(width), uint(height), img.RGBA, resize.Lanczos3)
	return RGBAImageFromImage(out)
}
