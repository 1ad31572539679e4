package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/render"
)

// Render generates output artifacts in the requested formats.
// jpeg and jpg produce identical bytes under their own keys.
func Render(m *qr.Matrix, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderSVG(m, opts)
		case FormatPNG, FormatJPEG, FormatJPG, FormatBMP:
			data, err = renderImage(m, format, opts)
		case FormatText:
			data, err = renderText(m, opts)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderSVG(m *qr.Matrix, opts Options) ([]byte, error) {
	var svgOpts []render.SVGOption
	if opts.Width > 0 {
		svgOpts = append(svgOpts, render.WithWidth(opts.Width))
	}
	if opts.Foreground != "" || opts.Background != "" {
		svgOpts = append(svgOpts, render.WithColors(opts.Foreground, opts.Background))
	}
	return render.SVG(m, opts.Border, svgOpts...)
}

func renderImage(m *qr.Matrix, format string, opts Options) ([]byte, error) {
	img, err := render.Image(m, opts.Scale, opts.Border)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodeImage(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderText(m *qr.Matrix, opts Options) ([]byte, error) {
	var consoleOpts []render.ConsoleOption
	if opts.Invert {
		consoleOpts = append(consoleOpts, render.WithInvert())
	}
	if opts.ASCII {
		consoleOpts = append(consoleOpts, render.WithASCII())
	}
	var buf bytes.Buffer
	if err := render.Console(&buf, m, opts.Border, consoleOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
