// Package errors defines the coded errors shared by the glitcher engine,
// the pipeline, the HTTP API and the CLI.
//
// Every failure that a caller can act on carries a [Code]. Codes group into
// a small set of [Kind] values so that hosts can translate them without
// knowing every code: the HTTP server maps a kind to a status, the CLI
// decides whether to print a bare message or the full chain.
//
//	err := errors.New(errors.ErrCodeInvalidMethod, "unknown selection method %q", name)
//	if errors.KindOf(err) == errors.KindInput {
//	    // reject the request
//	}
//
//	img, err := decode(r)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidMethod     Code = "INVALID_METHOD"
	ErrCodeInvalidStyle      Code = "INVALID_STYLE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// The operation needs a loaded image.
	ErrCodeNoImage Code = "NO_IMAGE"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Kind is the coarse category of a code.
type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindState
	KindNotFound
	KindUnavailable
	KindTimeout
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:      KindInput,
	ErrCodeInvalidMethod:     KindInput,
	ErrCodeInvalidStyle:      KindInput,
	ErrCodeInvalidFormat:     KindInput,
	ErrCodeInvalidDimensions: KindInput,
	ErrCodeInvalidConfig:     KindInput,
	ErrCodeInvalidPath:       KindInput,
	ErrCodeNoImage:           KindState,
	ErrCodeNotFound:          KindNotFound,
	ErrCodeFileNotFound:      KindNotFound,
	ErrCodeSessionNotFound:   KindNotFound,
	ErrCodeUnsupported:       KindUnavailable,
	ErrCodeTimeout:           KindTimeout,
}

// Kind returns the category of c. Unknown codes are internal.
func (c Code) Kind() Kind {
	return kinds[c]
}

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindState:
		return "state"
	case KindNotFound:
		return "not found"
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in the chain of err carries code.
// A wrapped INVALID_METHOD under an INVALID_CONFIG matches both.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf classifies err. Context deadlines count as timeouts; anything
// without a known code is internal.
func KindOf(err error) Kind {
	if code := GetCode(err); code != "" {
		return code.Kind()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

// UserMessage returns the message of the outermost *Error without its
// code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
