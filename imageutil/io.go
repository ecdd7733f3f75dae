package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DefaultJPEGQuality is the quality used by SaveImage for JPEG output.
const DefaultJPEGQuality = 95

// DecodeImage decodes an image from r and converts it to RGBA.
// Supports PNG, JPEG, GIF, TIFF, BMP and WebP.
func DecodeImage(r io.Reader) (*RGBAImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return RGBAImageFromImage(img), nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif, tif/tiff, bmp).
func SaveImage(img image.Image, path string) error {
	return SaveImageQuality(img, path, DefaultJPEGQuality)
}

// SaveImageQuality is SaveImage with an explicit JPEG quality (1-100).
// Other formats ignore quality.
func SaveImageQuality(img image.Image, path string, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return Encode(f, img, strings.ToLower(filepath.Ext(path)), quality)
}

// Encode writes img to w in the format named by ext (".png", ".jpg", ...).
// Unknown extensions default to PNG.
func Encode(w io.Writer, img image.Image, ext string, quality int) error {
	switch ext {
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}
