package client

import (
	"errors"
	"fmt"
)

// ErrorCode tags a failed backend call with the operation that failed.
// Codes are stable identifiers consumed by callers; there is no automatic
// retry behind them.
type ErrorCode string

const (
	ErrFetchingRecords        ErrorCode = "ERROR_FETCHING_RECORDS"
	ErrFetchingRecordByID     ErrorCode = "ERROR_FETCHING_RECORD_BY_ID"
	ErrDeletingRecordResponse ErrorCode = "ERROR_DELETING_RECORD_RESPONSE"
	ErrUpdatingRecordResponse ErrorCode = "ERROR_UPDATING_RECORD_RESPONSE"
	ErrCreatingRecordResponse ErrorCode = "ERROR_CREATING_RECORD_RESPONSE"
)

// APIError is the tagged error surfaced for every failed backend call.
// StatusCode is zero when the request never produced an HTTP response.
type APIError struct {
	Code       ErrorCode
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// statusError is the transport-level error for non-2xx responses.
type statusError struct {
	StatusCode int
	Message    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// tag wraps a transport error into an APIError carrying the given code,
// lifting the HTTP status when one is available.
func tag(code ErrorCode, err error) *APIError {
	var se *statusError
	if errors.As(err, &se) {
		return &APIError{Code: code, StatusCode: se.StatusCode, Err: err}
	}
	return &APIError{Code: code, Err: err}
}
