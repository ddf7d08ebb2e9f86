package llm

import (
	"context"
	"errors"
	"fmt"
)

// SendError is the single failure shape of a provider call.
type SendError struct {
	Provider Provider
	Message  string
	Timeout  bool
	Err      error
}

func (e *SendError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: send failed: %s", e.Provider, e.Message)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// NewSendError normalizes err into a *SendError for provider p.
// An existing *SendError is returned untouched.
func NewSendError(p Provider, err error) *SendError {
	var se *SendError
	if errors.As(err, &se) {
		return se
	}
	return &SendError{
		Provider: p,
		Message:  err.Error(),
		Timeout:  errors.Is(err, context.DeadlineExceeded),
		Err:      err,
	}
}
