package validator

import (
	"fmt"
	"slices"
)

// InList validates that a value, in its text form, is one of allowed.
func InList(field string, allowed []string) Rule {
	return newRule(field, CodeInList,
		fmt.Sprintf("must be one of: %v", allowed),
		map[string]any{"allowed_values": allowed},
		optional(func(v any) bool {
			return slices.Contains(allowed, toText(v))
		}))
}

// NotEqual validates that a value differs from reference.
func NotEqual(field string, reference any) Rule {
	return newRule(field, CodeNotEqual,
		fmt.Sprintf("must not be equal to %v", reference),
		map[string]any{"value": reference},
		optional(func(v any) bool {
			return !equalValues(v, reference)
		}))
}
