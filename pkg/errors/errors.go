// Package errors attaches stable codes to the failures the timeline
// library can report, so the CLI can print a short message and the HTTP
// API can pick a status and a machine-readable "code" field.
//
// Codes group into families:
//   - INVALID_*: the caller supplied something unusable
//   - NOT_FOUND, FILE_NOT_FOUND: a named resource does not exist
//   - MEASURE_FAILED: a label could not be measured
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// INVALID_DATE and INVALID_SCHEMA are the only failures raised while
// building an event table, and both happen before layout begins.
//
//	err := errors.New(errors.ErrCodeInvalidDate, "invalid date %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidDate) { ... }
//
//	err = errors.Wrap(errors.ErrCodeMeasure, cause, "measure %q", label)
package errors

import (
	"errors"
	"fmt"
)

// Code is the machine-readable part of an [Error].
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidDate   Code = "INVALID_DATE"
	ErrCodeInvalidSchema Code = "INVALID_SCHEMA"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeMeasure Code = "MEASURE_FAILED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// inputCodes are the codes that blame the caller. The HTTP API answers
// them with 400.
var inputCodes = map[Code]bool{
	ErrCodeInvalidInput:  true,
	ErrCodeInvalidDate:   true,
	ErrCodeInvalidSchema: true,
	ErrCodeInvalidFormat: true,
	ErrCodeInvalidConfig: true,
	ErrCodeInvalidPath:   true,
}

// Error carries a Code, a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	if e := (*Error)(nil); errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code. An
// INVALID_DATE wrapped inside an INVALID_INPUT only matches INVALID_INPUT.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCodeOr is GetCode with a fallback for uncoded errors.
func GetCodeOr(err error, fallback Code) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return fallback
}

// UserMessage renders err for people: codes are dropped and causes are
// joined with ": ". Plain errors are returned as they are.
func UserMessage(err error) string {
	if e := (*Error)(nil); errors.As(err, &e) {
		if e.Cause == nil {
			return e.Message
		}
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return err.Error()
}

// IsInputError reports whether err blames the caller rather than the
// program.
func IsInputError(err error) bool {
	return inputCodes[GetCode(err)]
}
