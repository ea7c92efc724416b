package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Limits enforced by the validators.
const (
	// MaxPixels is the largest image the engine accepts, in pixels.
	MaxPixels = 2_097_152

	// MaxFrames caps a single render job (one minute at 60 fps).
	MaxFrames = 3600

	maxPathLength = 1024
)

// ValidateDimensions checks that a width×height image is non-empty and no
// larger than MaxPixels.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "image dimensions must be positive, got %dx%d", width, height)
	}
	if width*height > MaxPixels {
		return New(ErrCodeInvalidDimensions, "image too large: %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}

// ValidateFrameCount checks a requested number of frames.
func ValidateFrameCount(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidInput, "frame count must be positive, got %d", n)
	}
	if n > MaxFrames {
		return New(ErrCodeInvalidInput, "frame count %d exceeds the maximum of %d", n, MaxFrames)
	}
	return nil
}

// ValidateOutputPath validates a path render output will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must not name a directory ("out/" or ".")
//   - Extension, if any, must be one of allowed (case-insensitive)
func ValidateOutputPath(path string, allowed ...string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") || filepath.Base(path) == "." {
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported output extension %q (want one of %s)", ext, strings.Join(allowed, ", "))
}
