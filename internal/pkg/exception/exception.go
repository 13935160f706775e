package exception

import (
	"errors"
	"fmt"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}

	return e.Cause
}

// Is matches on message and status code so a sentinel still matches
// after it has been wrapped around a cause.
func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Message == targetErr.Message &&
		e.StatusCode == targetErr.StatusCode
}

// Wrap returns a copy of the error carrying cause.
func (e ApplicationError) Wrap(cause error) ApplicationError {
	e.Cause = cause

	return e
}
