package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the response envelope.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeIncompleteSelection = "incomplete_selection"
	CodeInvalidLevelOrder   = "invalid_level_order"
	CodePathNotFound        = "path_not_found"
	CodeUnknownModel        = "unknown_model"
	CodeGenerationFailed    = "generation_failed"
	CodeGenerationTimeout   = "generation_timeout"
	CodeInternal            = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}
