package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"

	// Orchestration errors
	ErrConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	ErrProviderFailure    ErrorCode = "PROVIDER_ERROR"
	ErrParseFailure       ErrorCode = "PARSE_ERROR"
	ErrAllProvidersFailed ErrorCode = "ALL_PROVIDERS_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

// NewConfigurationError reports a workload whose fallback chain is empty:
// no provider is both enrolled and credentialed, so no attempt can be made.
func NewConfigurationError(workload Workload) *DomainError {
	return NewError(ErrConfiguration, fmt.Sprintf("no providers configured for %s workload", workload), nil)
}

// ProviderError wraps any transport failure, non-success status, or timeout
// from a backend. Adapters must never let a vendor-specific error type
// escape without this wrapper.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// ParseError reports provider output that could not be coerced into the
// quiz schema even after the normalizer's recovery passes. Snippet carries
// a capped prefix of the offending payload for diagnostics.
type ParseError struct {
	Provider string
	Snippet  string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %s returned unparseable output: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(provider, snippet string, err error) *ParseError {
	return &ParseError{Provider: provider, Snippet: snippet, Err: err}
}

// AggregateError signals that every provider in a workload's chain was
// attempted and failed. Attempts preserves chain order.
type AggregateError struct {
	Workload Workload
	Attempts []Attempt
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Provider, a.Outcome))
	}
	return fmt.Sprintf("all providers failed for %s workload: [%s]", e.Workload, strings.Join(parts, ", "))
}

func NewAggregateError(workload Workload, attempts []Attempt) *AggregateError {
	return &AggregateError{Workload: workload, Attempts: attempts}
}
