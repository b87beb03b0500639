package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// DefaultErrorMessage is used when neither the server nor the caller
// supplies anything better.
const DefaultErrorMessage = "Request failed"

// APIError is the single error type returned for failed requests. Status
// is 0 when the request never produced a response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// decodeError builds an APIError from a non-2xx response body. Field
// messages win over the top-level message, which wins over fallback.
func decodeError(status int, body []byte, fallback string) *APIError {
	if fallback == "" {
		fallback = DefaultErrorMessage
	}
	apiErr := &APIError{Status: status, Message: fallback}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}

	fields, order := orderedFields(eb.Errors)
	if len(order) > 0 {
		apiErr.Fields = fields
		var msgs []string
		for _, f := range order {
			msgs = append(msgs, fields[f]...)
		}
		apiErr.Message = strings.Join(msgs, " ")
		return apiErr
	}

	if msg := strings.TrimSpace(eb.Message); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// orderedFields decodes {"field": ["msg", ...]} keeping the server's key order.
func orderedFields(raw json.RawMessage) (map[string][]string, []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, nil
	}

	fields := make(map[string][]string)
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil
		}
		var msgs []string
		if err := json.Unmarshal(value, &msgs); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				continue
			}
			msgs = []string{single}
		}
		if len(msgs) == 0 {
			continue
		}
		if _, seen := fields[key]; !seen {
			order = append(order, key)
		}
		fields[key] = append(fields[key], msgs...)
	}
	return fields, order
}
