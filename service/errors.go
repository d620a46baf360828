package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plutov/paypal/v4"
)

// RequestError is returned for every failed call. Body holds the response
// body exactly as PayPal sent it, when there was one.
type RequestError struct {
	Type       ResponseType
	StatusCode int
	Body       json.RawMessage
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("paypal %s [%d]: [%v]", e.Type, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("paypal %s: [%v]", e.Type, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("paypal %s [%d]", e.Type, e.StatusCode)
	default:
		return fmt.Sprintf("paypal %s", e.Type)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Detail decodes the body into PayPal's standard error shape. It returns nil
// when the body is not a PayPal error document.
func (e *RequestError) Detail() *paypal.ErrorResponse {
	if len(e.Body) == 0 {
		return nil
	}
	var detail paypal.ErrorResponse
	if err := json.Unmarshal(e.Body, &detail); err != nil {
		return nil
	}
	if detail.Name == "" && detail.Message == "" {
		return nil
	}
	return &detail
}

// TypeOf returns the ResponseType carried by err. Errors that did not come
// from this package are reported as Error, and a nil error as Success.
func TypeOf(err error) ResponseType {
	if err == nil {
		return Success
	}
	var e *RequestError
	if errors.As(err, &e) {
		return e.Type
	}
	return Error
}

func upstreamError(statusCode int, body []byte) *RequestError {
	e := &RequestError{
		Type:       Error,
		StatusCode: statusCode,
		Body:       json.RawMessage(body),
	}
	if detail := e.Detail(); detail != nil {
		e.Err = fmt.Errorf("%s: %s (debug id %s)", detail.Name, detail.Message, detail.DebugID)
	}
	return e
}
