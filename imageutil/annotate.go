package imageutil

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Annotate draws a single line of text in the top-left corner of img on
// an opaque black band. The band height follows the point size; text
// that does not fit is clipped to the image.
func Annotate(img *RGBAImage, text string, size float64) error {
	f, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("failed to parse label font: %w", err)
	}
	if size <= 0 {
		size = 12
	}

	const dpi = 72
	band := int(size*1.5) + 1
	img.Fill(image.Rect(0, 0, img.Width(), band), RGB{})

	c := freetype.NewContext()
	c.SetDPI(dpi)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(img.Bounds())
	c.SetDst(img.RGBA)
	c.SetSrc(image.NewUniform(color.White))
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(int(size/3)+1, int(size)+1)
	if _, err := c.DrawString(text, pt); err != nil {
		return fmt.Errorf("failed to draw label: %w", err)
	}
	return nil
}
