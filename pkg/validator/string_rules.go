package validator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Required validates that a value is present and not empty.
// Strings must contain a non-space character, arrays at least one element,
// numbers must be non-zero, dates non-zero and UUIDs non-nil. A plain
// numeric field cannot tell an answered zero from no answer; declare it
// boxed (field.IntPtr) when zero is legal, and Present applies instead.
func Required(field string) Rule {
	return newRule(field, CodeRequired, "field is required", nil, func(v any, _ Lookup) bool {
		switch x := v.(type) {
		case nil:
			return false
		case string:
			return !isBlank(x)
		case time.Time:
			return !x.IsZero()
		case uuid.UUID:
			return x != uuid.Nil
		case bool:
			return true
		}
		if n, ok := toFloat(v); ok {
			return n != 0
		}
		if n, ok := length(v); ok {
			return n > 0
		}
		return true
	})
}

// Present validates that a value is set: nil, blank text and empty arrays
// fail, while zero numbers and zero dates pass. It reports under the
// required code and serves boxed fields, where nil is the only unset state.
func Present(field string) Rule {
	return newRule(field, CodeRequired, "field is required", nil, func(v any, _ Lookup) bool {
		switch x := v.(type) {
		case nil:
			return false
		case string:
			return !isBlank(x)
		}
		if n, ok := length(v); ok {
			return n > 0
		}
		return true
	})
}

// MinLength validates that text has at least min characters, or an array at
// least min elements.
func MinLength(field string, min int) Rule {
	return newRule(field, CodeMinLength,
		fmt.Sprintf("must be at least %d characters long", min),
		map[string]any{"min": min},
		func(v any, _ Lookup) bool {
			if isEmpty(v) {
				return true
			}
			n, ok := length(v)
			return ok && n >= min
		})
}

// MaxLength validates that text has at most max characters, or an array at
// most max elements.
func MaxLength(field string, max int) Rule {
	return newRule(field, CodeMaxLength,
		fmt.Sprintf("must be at most %d characters long", max),
		map[string]any{"max": max},
		func(v any, _ Lookup) bool {
			if isEmpty(v) {
				return true
			}
			n, ok := length(v)
			return ok && n <= max
		})
}
