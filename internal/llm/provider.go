package llm

import (
	"context"
)

// defines the interface for text-generation providers
type Provider interface {
	// Generate submits a prompt and returns the raw model text. No format
	// guarantee is made on the returned string.
	Generate(ctx context.Context, prompt string) (string, error)
	GetProviderName() string
}

// represents an error from a text-generation provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
