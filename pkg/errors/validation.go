package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// imageExtensions are the raster formats an output file may be written as.
var imageExtensions = map[string]bool{
	"png":  true,
	"jpeg": true,
	"jpg":  true,
	"bmp":  true,
}

// ValidateImagePath validates an output image path before any rendering is
// done, so a typo in the extension does not cost an encode.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be one of png, jpeg, jpg or bmp (case-insensitive)
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return New(ErrCodeInvalidPath, "no extension found for image file %q (try qr.png or qr.jpeg)", path)
	}
	if !imageExtensions[strings.ToLower(ext)] {
		return New(ErrCodeInvalidPath, "unrecognized image extension %q (supported: png, jpeg, jpg, bmp)", ext)
	}
	return nil
}

// ImageFormat returns the lower-cased extension of path without the dot.
// It does not validate; call ValidateImagePath first.
func ImageFormat(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
