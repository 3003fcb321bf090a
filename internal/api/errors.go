package api

import (
	"encoding/json"
	"fmt"
	"sort"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// messageKeys are checked in order when pulling a human message out of an error body.
var messageKeys = []string{"detail", "error_description", "message", "error"}

// extractMessage finds a readable message in a JSON error body. Besides the
// plain keys above it understands field error maps such as {"email": ["taken"]}.
func extractMessage(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range messageKeys {
		if s, ok := fields[key].(string); ok && s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		list, ok := fields[k].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		if s, ok := list[0].(string); ok {
			return k + ": " + s
		}
	}
	return ""
}
