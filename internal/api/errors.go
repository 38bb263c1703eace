package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingScope is returned when a call needs an organization or hackathon
// id the client was not configured with.
var ErrMissingScope = errors.New("organization or hackathon id not configured")

// Error is a non-success response from the API.
type Error struct {
	StatusCode int
	// Message is the server-provided human-readable message, if any.
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Path, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: API returned status %d", e.Method, e.Path, e.StatusCode)
}

// MessageOr returns the server message carried by err, or fallback when err
// carries none. It is the text shown to users for failed calls.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorMessage extracts the optional message from an error payload. Both the
// bare `{"message": ...}` and enveloped `{"data": {"message": ...}}` shapes
// are understood.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    *struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return strings.TrimSpace(payload.Message)
	case payload.Data != nil && payload.Data.Message != "":
		return strings.TrimSpace(payload.Data.Message)
	default:
		return strings.TrimSpace(payload.Error)
	}
}
