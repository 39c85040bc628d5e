package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestError is returned for any non-success response or transport
// failure. It carries the remote status and body verbatim; interpreting
// them (auth failure vs validation failure) is the caller's concern.
type RequestError struct {
	Method string
	URL    string
	Status int // 0 when the request never produced a response
	Body   []byte
	Err    error // underlying transport error, if any
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Detail returns the "detail" or "error" message from the response body,
// or the raw body when neither is present.
func (e *RequestError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(e.Body)
}

// ValidationError is the subtype of RequestError raised when the API
// rejects a submission with field-level messages (registration and
// checkout both do this with a 400 and a field → messages object).
type ValidationError struct {
	RequestError
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed (%d fields)", e.RequestError.Error(), len(e.Fields))
}

// newStatusError builds the most specific error for a non-success
// response: a ValidationError when the body is a DRF field-error object,
// a plain RequestError otherwise.
func newStatusError(method, url string, status int, body []byte) error {
	reqErr := RequestError{Method: method, URL: url, Status: status, Body: body}

	if status == http.StatusBadRequest {
		var fields map[string][]string
		if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
			return &ValidationError{RequestError: reqErr, Fields: fields}
		}
	}
	return &reqErr
}
