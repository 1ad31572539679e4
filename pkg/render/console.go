package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/wifiqr/pkg/qr"
)

const (
	blockFull  = "██"
	blockEmpty = "  "
	blockASCII = "##"
)

// ConsoleOption configures console rendering.
type ConsoleOption func(*consoleRenderer)

type consoleRenderer struct {
	invert bool
	ascii  bool
}

// WithInvert swaps dark and light glyphs, for terminals with a light
// background.
func WithInvert() ConsoleOption {
	return func(r *consoleRenderer) { r.invert = true }
}

// WithASCII draws with '#' instead of block characters.
func WithASCII() ConsoleOption {
	return func(r *consoleRenderer) { r.ascii = true }
}

// glyphs returns the strings for dark and light modules.
func (r consoleRenderer) glyphs() (dark, light string) {
	filled := blockFull
	if r.ascii {
		filled = blockASCII
	}
	if r.invert {
		return filled, blockEmpty
	}
	return blockEmpty, filled
}

// Console writes m to w as text, two characters per module, with
// quietZone modules of light margin on every side.
//
// The default glyphs draw dark modules as blank and light modules as full
// blocks, which reads correctly on the usual dark terminal background.
func Console(w io.Writer, m *qr.Matrix, quietZone int, opts ...ConsoleOption) error {
	if err := checkBorder(quietZone); err != nil {
		return err
	}
	var r consoleRenderer
	for _, opt := range opts {
		opt(&r)
	}
	dark, light := r.glyphs()

	side := m.Size() + 2*quietZone
	bw := bufio.NewWriter(w)
	margin := strings.Repeat(light, side)

	for i := 0; i < quietZone; i++ {
		bw.WriteString(margin)
		bw.WriteByte('\n')
	}
	for y := 0; y < m.Size(); y++ {
		bw.WriteString(strings.Repeat(light, quietZone))
		for x := 0; x < m.Size(); x++ {
			if m.Dark(x, y) {
				bw.WriteString(dark)
			} else {
				bw.WriteString(light)
			}
		}
		bw.WriteString(strings.Repeat(light, quietZone))
		bw.WriteByte('\n')
	}
	for i := 0; i < quietZone; i++ {
		bw.WriteString(margin)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
