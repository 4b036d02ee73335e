package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/matzehuels/beltprio/pkg/belt"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidGrid, cause, "failed to load")

	if err.Code != ErrCodeInvalidGrid {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGrid)
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
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeEmptySelection,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidGrid, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidGrid,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnknownTier, "x")); got != ErrCodeUnknownTier {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnknownTier)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}

func TestFromCore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"no candidates", belt.ErrNoEntryCandidates, ErrCodeNoEntryCandidates},
		{"empty selection", belt.ErrEmptySelection, ErrCodeEmptySelection},
		{"merge state", fmt.Errorf("run: %w", belt.ErrUnreachableMergeState), ErrCodeUnreachableMergeState},
		{"direction", fmt.Errorf("entity 3: %w", belt.ErrInvalidDirection), ErrCodeInvalidDirection},
		{"tier", belt.ErrUnknownTier, ErrCodeUnknownTier},
		{"occupied", belt.ErrTileOccupied, ErrCodeInvalidGrid},
		{"already coded", New(ErrCodeInvalidFormat, "x"), ErrCodeInvalidFormat},
		{"unknown", errors.New("boom"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromCore(tt.err)
			if got := GetCode(err); got != tt.want {
				t.Errorf("GetCode(FromCore()) = %v, want %v", got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("FromCore() should keep the original error in the chain")
			}
		})
	}

	if FromCore(nil) != nil {
		t.Error("FromCore(nil) should be nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidGrid, http.StatusBadRequest},
		{ErrCodeInvalidBlueprint, http.StatusBadRequest},
		{ErrCodeFileNotFound, http.StatusNotFound},
		{ErrCodeEmptySelection, http.StatusUnprocessableEntity},
		{ErrCodeUnreachableMergeState, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidGrid,
		ErrCodeInvalidBlueprint,
		ErrCodeInvalidDirection,
		ErrCodeUnknownTier,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNoEntryCandidates,
		ErrCodeEmptySelection,
		ErrCodeUnreachableMergeState,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
