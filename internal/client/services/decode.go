package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

var (
	// ErrUnexpectedResponse means a 2xx body did not have the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrEmptyID            = errors.New("id cannot be empty")
)

// API is the part of the HTTP client the services need.
type API interface {
	Do(ctx context.Context, req client.Request) (*client.Response, error)
	BaseURL() string
}

// call sends req and checks the envelope. op names the operation in errors.
func call(ctx context.Context, api API, op string, req client.Request) (*client.Response, error) {
	resp, err := api.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkEnvelope(resp.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// checkEnvelope only looks at JSON objects; arrays and empty bodies pass.
func checkEnvelope(body []byte) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return env.Err()
}

// decodeList accepts either a bare JSON array or an object holding the
// array under the first of fields that is present.
func decodeList[T any](body []byte, fields ...string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedResponse)
	}
	if body[0] == '[' {
		var out []T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
		}
		return out, nil
	}
	raw, err := field(body, fields...)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return out, nil
}

// decodeObject extracts the first of fields present in body into a T.
// Without fields the whole body is decoded.
func decodeObject[T any](body []byte, fields ...string) (*T, error) {
	raw := bytes.TrimSpace(body)
	if len(fields) > 0 {
		var err error
		if raw, err = field(body, fields...); err != nil {
			return nil, err
		}
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return out, nil
}

func field(body []byte, fields ...string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	for _, f := range fields {
		if raw, ok := obj[f]; ok && string(raw) != "null" {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %v present", ErrUnexpectedResponse, fields)
}

// pathID escapes id for use as a single path segment.
func pathID(id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	return url.PathEscape(id), nil
}
