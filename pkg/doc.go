// Package pkg provides the libraries behind the wifiqr command.
//
// # Overview
//
// wifiqr turns wireless network credentials into a QR code that phone
// cameras recognise as "join this network". The pkg directory is organized
// into these areas:
//
//  1. [wifi] - Credentials, escaping and the WIFI: payload string
//  2. [qr] - Error correction levels and the QR module matrix
//  3. [render] - SVG, raster image and console output of a matrix
//  4. [pipeline] - Orchestration (format → encode → render)
//  5. [config] - TOML defaults and named network profiles
//  6. [errors] - Structured error codes shared by CLI and HTTP server
//  7. [observability] - Hooks for pipeline and HTTP events
//
// # Architecture
//
//	wifi.Credentials
//	       ↓
//	  [wifi] package (validate + WIFI: string)
//	       ↓
//	  [qr] package (module matrix)
//	       ↓
//	  [render] package (SVG/PNG/JPEG/BMP/text)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/wifiqr/pkg/pipeline"
//	    "github.com/matzehuels/wifiqr/pkg/wifi"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	opts := pipeline.NewOptions(wifi.New("MyNet", "secret", "wpa2"), "png")
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("wifi.png", result.Artifacts["png"], 0o644)
//
// [wifi]: github.com/matzehuels/wifiqr/pkg/wifi
// [qr]: github.com/matzehuels/wifiqr/pkg/qr
// [render]: github.com/matzehuels/wifiqr/pkg/render
// [pipeline]: github.com/matzehuels/wifiqr/pkg/pipeline
// [config]: github.com/matzehuels/wifiqr/pkg/config
// [errors]: github.com/matzehuels/wifiqr/pkg/errors
// [observability]: github.com/matzehuels/wifiqr/pkg/observability
package pkg
