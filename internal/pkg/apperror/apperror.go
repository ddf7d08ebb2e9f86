// Package apperror carries the error kinds services hand to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound              Kind = "NOT_FOUND"
	KindValidation            Kind = "VALIDATION_ERROR"
	KindProviderNotConfigured Kind = "PROVIDER_NOT_CONFIGURED"
	KindUnsupportedProvider   Kind = "UNSUPPORTED_PROVIDER"
	KindUpstream              Kind = "UPSTREAM_ERROR"
	KindProviderTimeout       Kind = "PROVIDER_TIMEOUT"
	KindInternal              Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	// Data is optional partial state, e.g. the user message persisted before a failed reply.
	Data interface{}
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithData returns a copy of e carrying data.
func (e *Error) WithData(data interface{}) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func ProviderNotConfigured(provider string) *Error {
	return New(KindProviderNotConfigured,
		fmt.Sprintf("No API key configured for %s. Add one in settings to continue.", provider))
}

func UnsupportedProvider(value string) *Error {
	return New(KindUnsupportedProvider, fmt.Sprintf("Unsupported provider: %q", value))
}

func Internal(err error) *Error {
	return Wrap(KindInternal, "Internal server error", err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
