package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wifiqr/pkg/observability"
	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

// Runner executes the pipeline.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Encoder qr.Encoder
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If encoder is nil, a qr.Skip2Encoder is used.
// If logger is nil, log.Default() is used.
func NewRunner(encoder qr.Encoder, logger *log.Logger) *Runner {
	if encoder == nil {
		encoder = qr.Skip2Encoder{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Encoder: encoder,
		Logger:  logger,
	}
}

// Execute runs the complete format → encode → render pipeline.
// Credential validation errors are returned as they come from package wifi.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Format
	formatStart := time.Now()
	payload, err := r.Payload(ctx, opts.Credentials)
	if err != nil {
		return nil, err
	}
	result.Payload = payload
	result.Stats.FormatTime = time.Since(formatStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Encode
	encodeStart := time.Now()
	m, err := r.Encode(ctx, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Matrix = m
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.Stats.Size = m.Size()
	result.Stats.Version = m.Version()

	r.Logger.Debug("encoded payload",
		"version", m.Version(),
		"modules", m.Size(),
		"level", opts.Level,
		"duration", result.Stats.EncodeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(m, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Payload formats c into its WIFI: string. The payload carries the
// password, so only its length is logged.
func (r *Runner) Payload(ctx context.Context, c wifi.Credentials) (string, error) {
	payload, err := wifi.Format(c)
	observability.Pipeline().OnFormat(ctx, err)
	if err != nil {
		r.Logger.Debug("credentials rejected", "err", err)
		return "", err
	}
	r.Logger.Debug("formatted payload", "bytes", len(payload), "hidden", c.Hidden, "quote", c.Quote)
	return payload, nil
}

// Encode computes the module grid for payload. A version range in opts
// overrides the runner's encoder with a range-restricted one.
func (r *Runner) Encode(ctx context.Context, payload string, opts Options) (*qr.Matrix, error) {
	enc := r.Encoder
	if opts.MinVersion != 0 || opts.MaxVersion != 0 {
		enc = qr.Skip2Encoder{MinVersion: opts.MinVersion, MaxVersion: opts.MaxVersion}
	}

	start := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, opts.Level.String())
	m, err := enc.Encode(payload, opts.Level)
	size := 0
	if m != nil {
		size = m.Size()
	}
	observability.Pipeline().OnEncodeComplete(ctx, size, time.Since(start), err)
	return m, err
}
