package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/exception"
)

// RunRequest asks for one runner pass. Empty codes means the strategy's
// configured default list.
type RunRequest struct {
	Strategy string   `json:"strategy" validate:"required,oneof=sequential wait_all fire_and_report wait_each"`
	Codes    []string `json:"codes,omitempty" validate:"omitempty,max=10,dive,required,max=8"`
}

func (r *RunRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *RunRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type Airport struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Delay       bool   `json:"delay"`
	Temperature string `json:"temperature"`
}

// TaskReport is one concurrent task in submission order. Error is only
// filled where the strategy hands failures back to the caller.
type TaskReport struct {
	Code   string `json:"code"`
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
}

// Failure is a failure message as it reached the failure handler.
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunReport is the response for a runner pass
type RunReport struct {
	RunID     string       `json:"run_id"`
	Strategy  string       `json:"strategy"`
	Codes     []string     `json:"codes"`
	Airports  []Airport    `json:"airports"`
	Tasks     []TaskReport `json:"tasks,omitempty"`
	Failures  []Failure    `json:"failures,omitempty"`
	ElapsedMs int64        `json:"elapsed_ms"`
}
