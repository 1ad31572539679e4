// Package render turns a QR module grid into output formats.
//
// # Overview
//
// This package provides renderers for:
//
//   - SVG: a single path of unit squares, scaled by the viewer
//   - Raster images: PNG, JPEG and BMP drawn at an integer scale
//   - Console: block characters for scanning straight off a terminal
//
// Every renderer surrounds the grid with a quiet zone measured in modules.
// Scanners need a light margin around the symbol; four modules is what the
// QR standard asks for, two is usually enough on screens.
//
// # Usage
//
//	m, _ := qr.Skip2Encoder{}.Encode(payload, qr.High)
//
//	svg, err := render.SVG(m, 4)
//
//	img, err := render.Image(m, 10, 2)
//	err = render.EncodeImage(f, img, render.FormatPNG)
//
//	err = render.Console(os.Stdout, m, 2, render.WithInvert())
package render
