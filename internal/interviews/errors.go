package interviews

import (
	"fmt"
	"time"
)

// ErrorKind classifies domain failures so the transport layer can map them
// to status codes without string matching.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation_failed"
	KindRateLimited  ErrorKind = "rate_limited"
	KindUnavailable  ErrorKind = "upstream_unavailable"
	KindParseFailed  ErrorKind = "parse_failed"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal_error"
)

// DomainError is the only error type the service returns to callers.
type DomainError struct {
	Kind      ErrorKind
	Message   string
	Remaining time.Duration // only set for KindRateLimited
	Err       error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

func notFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

func unauthorized(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

func validation(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

func rateLimited(remaining time.Duration) *DomainError {
	secs := int((remaining + time.Second - 1) / time.Second)
	return &DomainError{
		Kind:      KindRateLimited,
		Message:   fmt.Sprintf("Please wait %d seconds before trying again.", secs),
		Remaining: remaining,
	}
}

func unavailable(message string) *DomainError {
	return &DomainError{Kind: KindUnavailable, Message: message}
}

func parseFailed(message string, err error) *DomainError {
	return &DomainError{Kind: KindParseFailed, Message: message, Err: err}
}

func conflict(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

func internal(message string, err error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: message, Err: err}
}
