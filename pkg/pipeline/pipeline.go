// Package pipeline provides the credential → payload → QR → artifact pipeline.
//
// This package chains the three stages that every entry point (CLI command,
// HTTP handler) needs, so they all validate, log and report timings the same
// way:
//
//  1. Format: turn wifi.Credentials into the WIFI: payload
//  2. Encode: compute the QR module grid for the payload
//  3. Render: produce artifacts (SVG, PNG, JPEG, BMP, console text)
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	opts := pipeline.Options{
//	    Credentials: wifi.New("MyNet", "secret", "wpa2"),
//	    Formats:     []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/render"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the raster size of one module in pixels.
	DefaultScale = 10

	// DefaultBorder is the quiet zone in modules.
	DefaultBorder = 2
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = render.FormatPNG
	FormatJPEG = render.FormatJPEG
	FormatJPG  = render.FormatJPG
	FormatBMP  = render.FormatBMP
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJPEG: true,
	FormatJPG:  true,
	FormatBMP:  true,
	FormatText: true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Format options
	Credentials wifi.Credentials

	// Encode options
	Level      qr.Level
	MinVersion int // 0 means no lower bound
	MaxVersion int // 0 means no upper bound

	// Render options
	Formats []string
	Scale   int  // pixels per module for raster formats
	Border  int  // quiet zone in modules
	Invert  bool // console: swap glyphs for light terminals
	ASCII   bool // console: use '#' instead of block characters
	Width   int  // svg: explicit pixel width, 0 for none

	// SVG colors, empty for black on white. See render.ValidateColor.
	Foreground string
	Background string

	// defaulted tracks whether SetDefaults has been called.
	defaulted bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Payload is the WIFI: string that was encoded.
	Payload string

	// Matrix is the QR module grid.
	Matrix *qr.Matrix

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Size       int // modules per side
	Version    int
	FormatTime time.Duration
	EncodeTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset render options. Level is left alone because its
// zero value (Low) is a valid choice; callers wanting qr.DefaultLevel set it.
// This method is idempotent.
func (o *Options) SetDefaults() {
	if o.defaulted {
		return
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.defaulted = true
}

// Validate checks render options. Credentials are validated by the format
// stage so their error codes reach the caller unchanged.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %d", o.Scale)
	}
	if o.Border < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "quiet zone must be non-negative, got %d", o.Border)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be non-negative, got %d", o.Width)
	}
	if err := o.validateVersions(); err != nil {
		return err
	}
	for _, c := range []string{o.Foreground, o.Background} {
		if c == "" {
			continue
		}
		if err := render.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// validateVersions checks the optional version range. Zero leaves a bound
// open.
func (o *Options) validateVersions() error {
	for _, v := range []int{o.MinVersion, o.MaxVersion} {
		if v != 0 && (v < qr.MinVersion || v > qr.MaxVersion) {
			return errors.New(errors.ErrCodeInvalidInput, "version must be within %d-%d, got %d", qr.MinVersion, qr.MaxVersion, v)
		}
	}
	if o.MinVersion != 0 && o.MaxVersion != 0 && o.MinVersion > o.MaxVersion {
		return errors.New(errors.ErrCodeInvalidInput, "min version %d is above max version %d", o.MinVersion, o.MaxVersion)
	}
	return nil
}

// NewOptions returns options for c with every default applied, including
// qr.DefaultLevel and DefaultBorder.
func NewOptions(c wifi.Credentials, formats ...string) Options {
	o := Options{
		Credentials: c,
		Level:       qr.DefaultLevel,
		Border:      DefaultBorder,
		Formats:     formats,
	}
	o.SetDefaults()
	return o
}
