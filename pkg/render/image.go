package render

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/qr"
)

// Raster formats accepted by EncodeImage.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatJPG  = "jpg"
	FormatBMP  = "bmp"
)

// jpegQuality keeps module edges crisp enough to scan.
const jpegQuality = 95

// Image draws m with each module as a scale×scale square and border
// modules of white quiet zone around it.
func Image(m *qr.Matrix, scale, border int) (*image.Gray, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %d", scale)
	}
	if err := checkBorder(border); err != nil {
		return nil, err
	}

	side := (m.Size() + 2*border) * scale
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if !m.Dark(x, y) {
				continue
			}
			x0, y0 := (x+border)*scale, (y+border)*scale
			for py := y0; py < y0+scale; py++ {
				for px := x0; px < x0+scale; px++ {
					img.SetGray(px, py, color.Gray{Y: 0})
				}
			}
		}
	}
	return img, nil
}

// EncodeImage writes img to w in the given raster format.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG, FormatJPG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported image format: %q (must be png, jpeg, jpg or bmp)", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}
