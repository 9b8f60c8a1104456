package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code   apperr.Code `json:"code"`
	Detail string      `json:"detail"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRaw writes pre-encoded JSON bytes with status 200.
func WriteRaw(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as INTERNAL_ERROR with status 500.
func WriteError(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	WriteJSON(w, apperr.HTTPStatus(code), ErrorBody{Code: code, Detail: apperr.UserMessage(err)})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields,
// trailing data and bodies larger than limit bytes.
func DecodeJSON(r *http.Request, v any, limit int64) error {
	body := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(body)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read request body")
	}
	if int64(len(data)) > limit {
		return apperr.New(apperr.ErrCodeInvalidInput, "request body exceeds %d bytes", limit)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	if dec.More() {
		return apperr.New(apperr.ErrCodeInvalidInput, "unexpected data after JSON body")
	}
	return nil
}

// ReadError converts a non-2xx response into a coded error. Bodies that
// are not an [ErrorBody] become NETWORK_ERROR with the status text.
func ReadError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body ErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Code != "" {
		return apperr.New(body.Code, "%s", body.Detail)
	}
	return apperr.New(apperr.ErrCodeNetwork, "unexpected status %s", resp.Status)
}

// StatusError records the status of a failed response alongside its coded
// error so callers can decide on retries.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d: %v", e.Status, e.Err) }
func (e *StatusError) Unwrap() error { return e.Err }

// ResponseError returns ReadError(resp) wrapped in a [StatusError], and
// additionally in a [RetryableError] when the status is retryable.
func ResponseError(resp *http.Response) error {
	var err error = &StatusError{Status: resp.StatusCode, Err: ReadError(resp)}
	if RetryableStatus(resp.StatusCode) {
		err = &RetryableError{Err: err}
	}
	return err
}

// StatusOf returns the response status recorded in err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
