package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const maxErrorBody = 64 << 10

// Error is a non-2xx backend response.
type Error struct {
	StatusCode int
	Message    string
	// Fields holds structured validation messages keyed by the backend's
	// field path, when the body carried any.
	Fields    map[string][]string
	RequestID string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == status
}

type errorBody struct {
	Message any             `json:"message"`
	Error   any             `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeError(resp *http.Response, requestID string) error {
	apiErr := &Error{StatusCode: resp.StatusCode, RequestID: requestID}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if len(data) > 0 && json.Unmarshal(data, &body) == nil {
		apiErr.Message = firstText(body.Message, body.Error)
		apiErr.Fields = decodeFields(body.Errors)
		if apiErr.Fields == nil {
			if fields, ok := body.Message.([]any); ok {
				apiErr.Fields = fieldsFromList(fields)
			}
		}
	} else if len(data) > 0 {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func firstText(values ...any) string {
	for _, v := range values {
		switch typed := v.(type) {
		case string:
			if s := strings.TrimSpace(typed); s != "" {
				return s
			}
		case []any:
			for _, item := range typed {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}

// decodeFields accepts {"path": "msg"}, {"path": ["msg", ...]} and
// [{"field"|"path"|"property": ..., "message": ...}].
func decodeFields(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	switch typed := generic.(type) {
	case map[string]any:
		out := make(map[string][]string, len(typed))
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = append(out[k], messagesOf(typed[k])...)
		}
		return nonEmpty(out)
	case []any:
		return fieldsFromList(typed)
	}
	return nil
}

func fieldsFromList(items []any) map[string][]string {
	out := make(map[string][]string)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		path := firstText(obj["field"], obj["path"], obj["property"])
		msgs := messagesOf(obj["message"])
		if len(msgs) == 0 {
			msgs = messagesOf(obj["constraints"])
		}
		out[path] = append(out[path], msgs...)
	}
	return nonEmpty(out)
}

func messagesOf(v any) []string {
	switch typed := v.(type) {
	case string:
		if s := strings.TrimSpace(typed); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, item := range typed {
			out = append(out, messagesOf(item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, messagesOf(typed[k])...)
		}
		return out
	}
	return nil
}

func nonEmpty(m map[string][]string) map[string][]string {
	for k, v := range m {
		if len(v) == 0 {
			delete(m, k)
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
