package service

import (
	"encoding/json"
	"errors"
)

// Response is the successful outcome of a call. Body is nil for NoContent and
// may be empty or hold PayPal's error document for NotFound.
type Response struct {
	Type       ResponseType
	StatusCode int
	Body       json.RawMessage
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v interface{}) error {
	if len(r.Body) == 0 {
		return errors.New("response has no body")
	}
	return json.Unmarshal(r.Body, v)
}

// Map returns the body as a generic JSON object.
func (r *Response) Map() (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
