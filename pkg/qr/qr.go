package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/wifiqr/pkg/errors"
)

// Level is the error correction level of a QR code.
type Level int

// Error correction levels, from least to most redundancy.
const (
	Low      Level = iota // ~7% recovery
	Medium                // ~15% recovery
	Quartile              // ~25% recovery
	High                  // ~30% recovery
)

// DefaultLevel matches what scanners handle best on printed codes.
const DefaultLevel = High

// Version bounds accepted by the QR standard.
const (
	MinVersion = 1
	MaxVersion = 40
)

var levelNames = map[Level]string{
	Low:      "low",
	Medium:   "medium",
	Quartile: "quartile",
	High:     "high",
}

// String returns the lower-case name of l.
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses a level name or its one-letter abbreviation.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid error correction level: %q (must be low, medium, quartile or high)", s)
}

// LevelNames returns the accepted level names in increasing order.
func LevelNames() []string {
	return []string{"low", "medium", "quartile", "high"}
}

func (l Level) recovery() (qrcode.RecoveryLevel, error) {
	switch l {
	case Low:
		return qrcode.Low, nil
	case Medium:
		return qrcode.Medium, nil
	case Quartile:
		return qrcode.High, nil
	case High:
		return qrcode.Highest, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid error correction level: %d", int(l))
}

// Matrix is a square grid of modules. It holds no quiet zone.
type Matrix struct {
	size    int
	version int
	modules [][]bool
}

// NewMatrix builds a matrix from rows of modules, true meaning dark.
// Every row must have len(rows) entries.
func NewMatrix(rows [][]bool) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty module grid")
	}
	modules := make([][]bool, n)
	for y, row := range rows {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "module grid row %d has %d modules, want %d", y, len(row), n)
		}
		modules[y] = append([]bool(nil), row...)
	}
	return &Matrix{size: n, modules: modules}, nil
}

// Size returns the number of modules per side.
func (m *Matrix) Size() int { return m.size }

// Version returns the QR version, or 0 if unknown.
func (m *Matrix) Version() int { return m.version }

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the grid are light.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.modules[y][x]
}

// Encoder turns content into a module grid.
type Encoder interface {
	Encode(content string, level Level) (*Matrix, error)
}

// Skip2Encoder encodes with github.com/skip2/go-qrcode.
// The zero value picks the smallest version automatically. Setting
// MinVersion and/or MaxVersion restricts the search to that range.
type Skip2Encoder struct {
	MinVersion int
	MaxVersion int
}

// Encode implements Encoder.
func (e Skip2Encoder) Encode(content string, level Level) (*Matrix, error) {
	rl, err := level.recovery()
	if err != nil {
		return nil, err
	}

	if e.MinVersion == 0 && e.MaxVersion == 0 {
		q, err := qrcode.New(content, rl)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataTooLong, err, "encode %d bytes at level %s", len(content), level)
		}
		return fromSkip2(q)
	}

	lo, hi, err := e.versionRange()
	if err != nil {
		return nil, err
	}

	var lastErr error
	for v := lo; v <= hi; v++ {
		q, err := qrcode.NewWithForcedVersion(content, v, rl)
		if err != nil {
			lastErr = err
			continue
		}
		return fromSkip2(q)
	}
	return nil, errors.Wrap(errors.ErrCodeDataTooLong, lastErr, "content does not fit versions %d-%d at level %s", lo, hi, level)
}

func (e Skip2Encoder) versionRange() (int, int, error) {
	lo, hi := e.MinVersion, e.MaxVersion
	if lo == 0 {
		lo = MinVersion
	}
	if hi == 0 {
		hi = MaxVersion
	}
	if lo < MinVersion || hi > MaxVersion || lo > hi {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid version range %d-%d (must be within %d-%d)", lo, hi, MinVersion, MaxVersion)
	}
	return lo, hi, nil
}

func fromSkip2(q *qrcode.QRCode) (*Matrix, error) {
	q.DisableBorder = true
	// Bitmap builds the symbol; call it once per QRCode.
	m, err := NewMatrix(q.Bitmap())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "unexpected module grid")
	}
	m.version = q.VersionNumber
	return m, nil
}
