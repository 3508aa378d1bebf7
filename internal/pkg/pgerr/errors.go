package pgerr

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDataUnavailable    = "DATA_UNAVAILABLE"
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidInput is returned when a row, key or request parameter is malformed or missing.
	ErrInvalidInput = New(http.StatusBadRequest, CodeInvalidInput, "invalid input: some or all input values are invalid")

	// ErrDataUnavailable is returned when a storage or upstream fetch failed or timed out.
	ErrDataUnavailable = New(http.StatusServiceUnavailable, CodeDataUnavailable, "data unavailable: a required data source could not be read")

	// ErrConfiguration is returned when a static table (e.g. ensemble weights) is invalid.
	ErrConfiguration = New(http.StatusInternalServerError, CodeConfigurationError, "configuration error")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(http.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type ForecastError struct {
	StatusCode int    `json:"-" example:"400"`
	ErrorCode  string `json:"code" example:"INVALID_INPUT"`
	Message    string `json:"message" example:"invalid input: some or all input values are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *ForecastError {
	return &ForecastError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Msg returns a copy of e with a formatted message. The receiver is never mutated.
func (e ForecastError) Msg(format string, parts ...any) *ForecastError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e ForecastError) WithExtras(extras Extras) *ForecastError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *ForecastError {
	e := *ErrInvalidInput
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports errors of the same ErrorCode as equal, so copies produced by Msg
// still match their sentinel with errors.Is.
func (e *ForecastError) Is(target error) bool {
	t, ok := target.(*ForecastError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}
