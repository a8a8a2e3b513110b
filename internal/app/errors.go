package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	var ire invalidReqErr
	if errors.As(err, &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// RemoteError is a failure reported by github api.
// Message and StatusCode are passed as received from the api.
type RemoteError struct {
	Message    string
	StatusCode int
}

// Error implements error interface
func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Status returns http status code of the failure.
func (e *RemoteError) Status() int {
	return e.StatusCode
}

// RateLimitExceededError is returned when github api quota is exhausted.
// No remote call is made when this error is returned.
type RateLimitExceededError struct {
	RemoteError
	Limit int
	Reset time.Time
}

func newRateLimitExceededError(q Quota) *RateLimitExceededError {
	return &RateLimitExceededError{
		RemoteError: RemoteError{
			Message: fmt.Sprintf(
				"github api rate limit of %d exceeded, try again after %s",
				q.Limit,
				formatReset(q.Reset),
			),
			StatusCode: http.StatusTooManyRequests,
		},
		Limit: q.Limit,
		Reset: q.Reset,
	}
}

// IsRateLimitExceeded checks if given error is caused by exhausted api quota.
func IsRateLimitExceeded(err error) bool {
	var rle *RateLimitExceededError
	return errors.As(err, &rle)
}

// OrganizationFetchError is returned when organization or its repositories can't be retrieved.
type OrganizationFetchError struct {
	RemoteError
}

// Error implements error interface
func (e *OrganizationFetchError) Error() string {
	return "fetching organization: " + e.RemoteError.Error()
}

// ContributorFetchError is returned when repository contributors can't be retrieved.
type ContributorFetchError struct {
	RemoteError
}

// Error implements error interface
func (e *ContributorFetchError) Error() string {
	return "fetching contributors: " + e.RemoteError.Error()
}

// LanguageFetchError is returned when repository languages can't be retrieved.
type LanguageFetchError struct {
	RemoteError
}

// Error implements error interface
func (e *LanguageFetchError) Error() string {
	return "fetching languages: " + e.RemoteError.Error()
}

// StatusCode returns status code carried by err, or 0 if there is none.
func StatusCode(err error) int {
	type statuser interface {
		Status() int
	}

	var s statuser
	if errors.As(err, &s) {
		return s.Status()
	}

	return 0
}

// remoteErrorFrom extracts message and status from err.
// Errors not produced by github adapter are kept with status 0.
func remoteErrorFrom(err error) RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return *re
	}

	return RemoteError{Message: err.Error()}
}
