package paperless

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// extractAPIErrorBody flattens the error shapes the REST framework emits:
// {"detail": "..."}, {"field": ["..."]}, {"non_field_errors": [...]} or a bare list.
func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var list []any
	if err := json.Unmarshal(body, &list); err == nil {
		return joinMessages(list)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["non_field_errors"]); ok {
		return msg, true
	}

	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msg, ok := parseErrorValue(payload[field]); ok {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case []any:
		return joinMessages(value)
	case map[string]any:
		if nested, ok := parseErrorValue(value["detail"]); ok {
			return nested, true
		}
		message, _ := value["message"].(string)
		return parseErrorValue(message)
	}
	return "", false
}

func joinMessages(values []any) (string, bool) {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if msg, ok := parseErrorValue(v); ok {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}
