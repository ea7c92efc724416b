package errors

import (
	"strings"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"one megapixel", 1024, 1024, false},
		{"at limit", 2048, 1024, false},
		{"single pixel", 1, 1, false},

		{"zero width", 0, 10, true},
		{"negative height", 10, -1, true},
		{"over limit", 2048, 1025, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("ValidateDimensions(%d, %d) returned wrong error code: %v", tt.w, tt.h, err)
			}
		})
	}
}

func TestValidateFrameCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{120, false},
		{MaxFrames, false},
		{0, true},
		{-5, true},
		{MaxFrames + 1, true},
	}

	for _, tt := range tests {
		err := ValidateFrameCount(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFrameCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed []string
		wantErr bool
		code    Code
	}{
		{"png", "out.png", []string{".png", ".gif"}, false, ""},
		{"uppercase ext", "OUT.GIF", []string{".png", ".gif"}, false, ""},
		{"nested", "renders/run1/out.png", []string{".png"}, false, ""},
		{"no extension", "frames", []string{".png"}, false, ""},
		{"any extension", "out.webm", nil, false, ""},

		{"empty", "", nil, true, ErrCodeInvalidPath},
		{"directory", "renders/", nil, true, ErrCodeInvalidPath},
		{"dot", ".", nil, true, ErrCodeInvalidPath},
		{"control char", "out\x01.png", nil, true, ErrCodeInvalidPath},
		{"too long", strings.Repeat("a", 1100) + ".png", nil, true, ErrCodeInvalidPath},
		{"wrong extension", "out.jpg", []string{".png", ".gif"}, true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, tt.code) {
				t.Errorf("ValidateOutputPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
