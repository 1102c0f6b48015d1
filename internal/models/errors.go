package models

import (
	"errors"
	"net/http"
)

// AppError is the single error shape the API surfaces. Status mirrors the
// HTTP status the handler should respond with.
type AppError struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Expected reports whether the error is a non-fatal, user-facing condition
// (empty results and the like) that must not be logged as a server error.
func (e *AppError) Expected() bool {
	return e.Status < http.StatusInternalServerError
}

// AsAppError unwraps err into an AppError, falling back to a generic
// internal error so no internal detail leaks to the caller.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return ErrInternal(), false
}

func ErrInvalidQuery() *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Please specify a location.",
	}
}

func ErrUpstreamUnavailable(status int) *AppError {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	return &AppError{
		Status:  status,
		Message: "An error occured while polling the venue provider. Try again later.",
	}
}

func ErrNoResults() *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Message: "No businesses were found near the specified location.",
	}
}

func ErrVenueNotFound() *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Message: "The venue you requested was not found in our database.",
		Details: []string{
			"The venue has likely not yet been indexed in our database, yet.",
			"It will be indexed if its details are viewed, or it appears in search results.",
			"The venue may be available at a later date, so try again later.",
		},
	}
}

func ErrVenueClosed() *AppError {
	return &AppError{
		Status:  http.StatusGone,
		Message: "The business you have requested has closed its doors for good.",
	}
}

func ErrNotAttending() *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Message: "You have to be attending the venue to post a chatter.",
	}
}

func ErrBodyTooLong() *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Chatter comments cannot exceed 140 characters in length.",
	}
}

func ErrInvalidChatter() *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "A chatter comment requires a non-empty body.",
	}
}

func ErrNoChatters() *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Message: "No chatters were found.",
	}
}

func ErrUnauthenticated() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Message: "You are not logged in.",
	}
}

func ErrInternal() *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Try again later.",
	}
}
