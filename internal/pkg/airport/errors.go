package airport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/exception"
)

var ErrFetchFailure = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "airport status fetch failed",
}

var ErrUnknownAirport = exception.ApplicationError{
	StatusCode: http.StatusNotFound,
	Message:    "airport not found",
}

var ErrUpstreamStatus = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "unexpected airport status response",
}

var ErrTrailingData = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "trailing data after airport status",
}

var ErrIncompleteRecord = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "incomplete airport status record",
}

// FetchError is the only failure a Fetcher returns. Unknown codes, transport
// errors and undecodable bodies all end up here with the cause attached.
type FetchError struct {
	Code  string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch airport %s: %s", e.Code, e.Message())
}

// Message is the failure text without the airport prefix.
func (e *FetchError) Message() string {
	if e.Cause == nil {
		return ErrFetchFailure.Message
	}

	return e.Cause.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	return ErrFetchFailure.Is(target)
}

// AsFetchError returns err as a *FetchError for code, wrapping it when it is
// not one already.
func AsFetchError(code string, err error) *FetchError {
	if err == nil {
		return nil
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}

	return &FetchError{Code: code, Cause: err}
}
