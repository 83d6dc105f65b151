package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDate, "invalid date: %s", "31.04.2024")

	if err.Code != ErrCodeInvalidDate {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDate)
	}

	if err.Message != "invalid date: 31.04.2024" {
		t.Errorf("Message = %v, want %v", err.Message, "invalid date: 31.04.2024")
	}

	expected := "INVALID_DATE: invalid date: 31.04.2024"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("font face unavailable")
	err := Wrap(ErrCodeMeasure, cause, "measure label")

	if err.Code != ErrCodeMeasure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMeasure)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	dateErr := New(ErrCodeInvalidDate, "bad")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", New(ErrCodeInvalidSchema, "x"), ErrCodeInvalidSchema, true},
		{"other code", New(ErrCodeInvalidSchema, "x"), ErrCodeInvalidDate, false},
		{"outer code wins", Wrap(ErrCodeInvalidInput, dateErr, "outer"), ErrCodeInvalidInput, true},
		{"inner code hidden", Wrap(ErrCodeInvalidInput, dateErr, "outer"), ErrCodeInvalidDate, false},
		{"fmt wrapped", fmt.Errorf("record 3: %w", dateErr), ErrCodeInvalidDate, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
		{"empty code", errors.New("plain"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{New(ErrCodeMeasure, "x"), ErrCodeMeasure},
		{fmt.Errorf("wrapped: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound},
		{errors.New("plain"), ""},
	}
	for _, tt := range tests {
		if got := GetCode(tt.err); got != tt.want {
			t.Errorf("GetCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped chain",
			err:      Wrap(ErrCodeInvalidSchema, New(ErrCodeInvalidDate, "bad date"), "record 2"),
			expected: "record 2: bad date",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	if !IsInputError(New(ErrCodeInvalidDate, "x")) {
		t.Error("INVALID_DATE should be an input error")
	}
	if !IsInputError(fmt.Errorf("ctx: %w", New(ErrCodeInvalidSchema, "x"))) {
		t.Error("wrapped INVALID_SCHEMA should be an input error")
	}
	if IsInputError(New(ErrCodeMeasure, "x")) {
		t.Error("MEASURE_FAILED is not an input error")
	}
	if IsInputError(errors.New("plain")) {
		t.Error("plain errors are not input errors")
	}
}

func TestGetCodeOr(t *testing.T) {
	if got := GetCodeOr(New(ErrCodeInvalidSchema, "x"), ErrCodeInternal); got != ErrCodeInvalidSchema {
		t.Errorf("GetCodeOr() = %v, want %v", got, ErrCodeInvalidSchema)
	}
	if got := GetCodeOr(errors.New("plain"), ErrCodeInvalidFormat); got != ErrCodeInvalidFormat {
		t.Errorf("GetCodeOr() = %v, want %v", got, ErrCodeInvalidFormat)
	}
}
