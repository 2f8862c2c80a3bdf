package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseStringList normalizes the list-shaped values clients send for
// fields like amenities or image URLs. One grammar, applied in order:
//
//   - nil → empty list
//   - []string / []interface{} → elements stringified
//   - []byte / json.RawMessage → decoded as a JSON array
//   - string starting with "[" → decoded as a JSON array
//   - any other string → split on commas
//
// Elements are trimmed and empties dropped. The result is never nil.
func ParseStringList(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanList(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return cleanList(out)
	case json.RawMessage:
		return parseListString(string(v))
	case []byte:
		return parseListString(string(v))
	case string:
		return parseListString(v)
	default:
		return []string{}
	}
}

func parseListString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") {
		var items []interface{}
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			out := make([]string, 0, len(items))
			for _, item := range items {
				out = append(out, fmt.Sprintf("%v", item))
			}
			return cleanList(out)
		}
		// malformed JSON array falls through to comma splitting
	}

	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
