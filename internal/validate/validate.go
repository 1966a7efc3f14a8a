// Package validate holds the pure input checks performed before any store
// operation. Both functions are side-effect free and report failure as a
// value, never as an error.
package validate

import "encoding/json"

// ValidSlug reports whether s is a well-formed endpoint slug: one or more
// lowercase ASCII letters, digits or hyphens. No normalization (trimming,
// case-folding) is applied; callers must supply the canonical value.
func ValidSlug(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

// JSONValue parses s as JSON and returns the raw value with ok=true, or
// (nil, false) when s is malformed. Callers must check ok before use; the
// boolean distinguishes "malformed" from an empty or absent value.
func JSONValue(s string) (json.RawMessage, bool) {
	var v json.RawMessage
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
