package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Kind names the error class for logs and metrics.
func (e *ErrorWithStatusCode) Kind() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "authorization"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnauthorized:
		return "authentication"
	default:
		if e.StatusCode >= 500 {
			return "internal"
		}
		return "client"
	}
}

func Validation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Authorization(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

// Conflict is reserved for uniqueness violations (usernames for now).
func Conflict(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func Unauthenticated(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func hasStatus(err error, code int) bool {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode == code
	}
	return false
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func IsAuthorization(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsInternal reports whether err carries no client-facing status, i.e. it is a storage or collaborator failure.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode >= 500
	}
	return true
}
