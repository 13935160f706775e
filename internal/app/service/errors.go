package service

import (
	"net/http"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/exception"
)

var ErrUnknownStrategy = exception.ApplicationError{
	Message:    "unknown runner strategy",
	StatusCode: http.StatusBadRequest,
}
