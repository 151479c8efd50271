package apierr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidID          Code = "INVALID_ID"
	CodeDatabase           Code = "DATABASE_ERROR"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// APIError is the body of every failed response. Message keeps the key clients already read.
type APIError struct {
	Code       Code              `json:"code"`
	Message    string            `json:"message"`
	Cause      string            `json:"error,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
}

func (e *APIError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithCause exposes the underlying error text to the caller.
func (e *APIError) WithCause(err error) *APIError {
	if err != nil {
		e.Cause = err.Error()
	}
	return e
}

func (e *APIError) WithDetail(key, value string) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		Code:       CodeValidation,
		Message:    "Invalid request body",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInvalidIDError is deliberately a 500: malformed identifiers share the generic server-error status.
func NewInvalidIDError(id string) *APIError {
	return &APIError{
		Code:       CodeInvalidID,
		Message:    "Invalid identifier",
		Details:    map[string]string{"id": id},
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewDatabaseError(message string) *APIError {
	return &APIError{
		Code:       CodeDatabase,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewStorageUnavailableError() *APIError {
	return &APIError{
		Code:       CodeStorageUnavailable,
		Message:    "Photo storage is not configured",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An internal error occurred"
	}
	return &APIError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Respond writes err as the JSON body and aborts the handler chain.
func Respond(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err)
}
