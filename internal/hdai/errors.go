package hdai

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("hdai: missing API key")
	ErrMissingJobID  = errors.New("hdai: missing job id")
)

// TransportError is returned when the upstream could not be reached or the
// exchange failed before a response status was received. A non-2xx status
// from the upstream is not a TransportError.
type TransportError struct {
	Op  string // "submit" or "status"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hdai %s request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
