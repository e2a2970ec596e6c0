// Package domain defines the core domain models for steam-cli.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a client-side error with a structured error code.
// Codes follow the format STEAM-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "STEAM-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HTTPError is returned when the backend answers with a non-2xx status.
// The response body is never parsed on this path.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "unexpected status"
	}
	if e.Path == "" {
		return fmt.Sprintf("http error: status %d (%s)", e.StatusCode, text)
	}
	return fmt.Sprintf("http error: %s %s: status %d (%s)", e.Method, e.Path, e.StatusCode, text)
}

// NewHTTPError creates an HTTPError for the given status.
func NewHTTPError(status int) *HTTPError {
	return &HTTPError{StatusCode: status}
}

// IsHTTPStatus reports whether err is an HTTPError with the given status.
// A zero status matches any HTTPError.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	return status == 0 || he.StatusCode == status
}

// ============================================================================
// Credential Errors (AUTH)
// ============================================================================

var (
	// ErrCredentialUnavailable indicates the credential provider could not produce a token.
	ErrCredentialUnavailable = NewDomainError("STEAM-AUTH-4010", "credential unavailable")

	// ErrConsentDenied indicates the user refused to share their token.
	ErrConsentDenied = NewDomainError("STEAM-AUTH-4030", "consent denied")

	// ErrNoToken indicates an authenticated operation was attempted without a token.
	ErrNoToken = NewDomainError("STEAM-AUTH-4011", "no access token available")
)

// ============================================================================
// Transport Errors (NET)
// ============================================================================

var (
	// ErrNetwork indicates a transport-level failure (DNS, refused, reset, timeout).
	ErrNetwork = NewDomainError("STEAM-NET-5030", "network unreachable")

	// ErrParse indicates the response body was not valid JSON.
	ErrParse = NewDomainError("STEAM-NET-5020", "invalid response body")
)

// ============================================================================
// Client Errors (CLI)
// ============================================================================

var (
	// ErrValidation indicates user input failed validation.
	ErrValidation = NewDomainError("STEAM-CLI-4000", "validation failed")

	// ErrNotFound indicates a lookup found no matching record.
	ErrNotFound = NewDomainError("STEAM-CLI-4040", "not found")
)

// IsCredentialError reports whether err belongs to the credential class.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrCredentialUnavailable) || errors.Is(err, ErrConsentDenied)
}
