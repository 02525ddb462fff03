package transport

import (
	"encoding/json"
)

var censoredFields = []string{"password"}

// censorBody masks credential fields before a request body reaches the log.
// Non-JSON bodies pass through untouched.
func censorBody(body []byte) []byte {
	parsed := map[string]interface{}{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return body
	}
	for _, field := range censoredFields {
		if _, ok := parsed[field]; ok {
			parsed[field] = "$censored"
		}
	}
	out, err := json.Marshal(parsed)
	if err != nil {
		return body
	}
	return out
}
