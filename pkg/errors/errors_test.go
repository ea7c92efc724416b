package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidMethod, "unknown selection method %q", "zigzag")
	if want := `INVALID_METHOD: unknown selection method "zigzag"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidFormat, cause, "decode %s", "photo.png")
	if want := "INVALID_FORMAT: decode photo.png: unexpected EOF"; wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("stdlib errors.Is does not reach the cause")
	}
}

func TestIsWalksChain(t *testing.T) {
	inner := New(ErrCodeInvalidMethod, "unknown method")
	outer := Wrap(ErrCodeInvalidConfig, inner, "load glitch.toml")
	foreign := fmt.Errorf("session 7: %w", outer)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"outer code", outer, ErrCodeInvalidConfig, true},
		{"inner code", outer, ErrCodeInvalidMethod, true},
		{"through fmt wrap", foreign, ErrCodeInvalidMethod, true},
		{"absent code", outer, ErrCodeNoImage, false},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{New(ErrCodeInvalidDimensions, "0x0"), KindInput},
		{New(ErrCodeNoImage, "load an image first"), KindState},
		{New(ErrCodeSessionNotFound, "abc"), KindNotFound},
		{New(ErrCodeUnsupported, "no display"), KindUnavailable},
		{New(ErrCodeTimeout, "render"), KindTimeout},
		{fmt.Errorf("step: %w", context.DeadlineExceeded), KindTimeout},
		{New(Code("SOMETHING_NEW"), "x"), KindInternal},
		{errors.New("plain"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("render: %w", Wrap(ErrCodeFileNotFound, errors.New("stat"), "no such image photo.jpg"))
	if got := GetCode(err); got != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeFileNotFound)
	}
	if got := UserMessage(err); got != "no such image photo.jpg" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("disk full")
	if GetCode(plain) != "" || UserMessage(plain) != "disk full" {
		t.Errorf("uncoded error: code %q, message %q", GetCode(plain), UserMessage(plain))
	}
}

func TestEveryCodeIsClassified(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput, ErrCodeInvalidMethod, ErrCodeInvalidStyle, ErrCodeInvalidFormat,
		ErrCodeInvalidDimensions, ErrCodeInvalidConfig, ErrCodeInvalidPath,
		ErrCodeNoImage,
		ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeSessionNotFound,
		ErrCodeTimeout, ErrCodeUnsupported,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate code %s", c)
		}
		seen[c] = true
		if c.Kind() == KindInternal {
			t.Errorf("%s has no kind", c)
		}
	}
	if ErrCodeInternal.Kind() != KindInternal {
		t.Errorf("INTERNAL_ERROR kind = %s", ErrCodeInternal.Kind())
	}
}
