package tts

import (
	"context"
	"errors"
	"fmt"
)

// DefaultLanguage is used when a request does not name a language.
const DefaultLanguage = "hi-IN"

// Provider defines the interface for Text-To-Speech vendors.
type Provider interface {
	// Synthesize turns vendor markup into encoded audio bytes (MP3 unless the
	// vendor decides otherwise). voiceKey is resolved through the vendor's
	// VoiceTable. Exactly one outbound call is made; nothing is retried.
	Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error)
}

// ErrClientNotInitialized is returned (wrapped in a ProviderError) by adapters
// whose vendor client or credentials were unavailable at construction time.
var ErrClientNotInitialized = errors.New("client not initialized")

// ProviderError represents a failed vendor call: a non-2xx response, a
// transport failure, or a client that could not be initialized.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s synthesis failed", e.Provider)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError for a vendor response status.
func NewProviderError(provider string, statusCode int, message string) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: message}
}

// WrapProviderError wraps a transport or SDK error.
func WrapProviderError(provider, message string, err error) *ProviderError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return &ProviderError{Provider: provider, Message: message, Err: err}
}

// NotInitialized builds the error returned by an adapter without a usable client.
// displayName is the human-facing client name, e.g. "Google Cloud".
func NotInitialized(provider, displayName string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  fmt.Sprintf("%s client not initialized", displayName),
		Err:      ErrClientNotInitialized,
	}
}

// IsProviderError checks if err is (or wraps) a vendor failure.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// UnknownProviderError is returned when a provider key is not registered.
// It is a caller input error, not a vendor failure.
type UnknownProviderError struct {
	Key string
}

func (e *UnknownProviderError) Error() string {
	return "Unknown provider: " + e.Key
}

// IsUnknownProvider checks if err is (or wraps) an UnknownProviderError.
func IsUnknownProvider(err error) bool {
	var ue *UnknownProviderError
	return errors.As(err, &ue)
}
