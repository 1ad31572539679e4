package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/qr"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	foreground string
	background string
	width      int
}

// WithColors sets the module and background fill colors. An empty
// string keeps the default for that color.
func WithColors(foreground, background string) SVGOption {
	return func(r *svgRenderer) {
		if foreground != "" {
			r.foreground = foreground
		}
		if background != "" {
			r.background = background
		}
	}
}

// ValidateColor accepts #rgb, #rrggbb or a plain color name such as navy.
// Anything else could break out of the fill attribute.
func ValidateColor(c string) error {
	if isHexColor(c) || isColorName(c) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid color %q (use #rgb, #rrggbb or a name such as navy)", c)
}

func isHexColor(c string) bool {
	if (len(c) != 4 && len(c) != 7) || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func isColorName(c string) bool {
	if c == "" || len(c) > 32 {
		return false
	}
	for _, r := range c {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// WithWidth sets explicit width and height attributes in pixels.
// Without it the document only carries a viewBox.
func WithWidth(px int) SVGOption {
	return func(r *svgRenderer) { r.width = px }
}

// SVG renders m as a standalone SVG 1.1 document with border modules of
// quiet zone on each side.
func SVG(m *qr.Matrix, border int, opts ...SVGOption) ([]byte, error) {
	if err := checkBorder(border); err != nil {
		return nil, err
	}
	r := svgRenderer{foreground: "#000000", background: "#FFFFFF"}
	for _, opt := range opts {
		opt(&r)
	}
	for _, c := range []string{r.foreground, r.background} {
		if err := ValidateColor(c); err != nil {
			return nil, err
		}
	}

	dim := m.Size() + 2*border

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n")
	if r.width > 0 {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" width="%d" height="%d" stroke="none">`+"\n",
			dim, dim, r.width, r.width)
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" stroke="none">`+"\n", dim, dim)
	}
	fmt.Fprintf(&buf, "\t"+`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	buf.WriteString("\t" + `<path d="`)
	first := true
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if !m.Dark(x, y) {
				continue
			}
			if !first {
				buf.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&buf, "M%d,%dh1v1h-1z", x+border, y+border)
		}
	}
	fmt.Fprintf(&buf, `" fill="%s"/>`+"\n", r.foreground)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func checkBorder(border int) error {
	if border < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "quiet zone must be non-negative, got %d", border)
	}
	return nil
}
