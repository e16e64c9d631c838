package validator

import (
	"fmt"
	"time"
)

// MinDate validates that a date is not before min.
func MinDate(field string, min time.Time) Rule {
	return newRule(field, CodeMinDate,
		fmt.Sprintf("date must be on or after %s", min.Format(time.RFC3339)),
		map[string]any{"min": min},
		optional(func(v any) bool {
			t, ok := v.(time.Time)
			return ok && !t.Before(min)
		}))
}

// MaxDate validates that a date is not after max.
func MaxDate(field string, max time.Time) Rule {
	return newRule(field, CodeMaxDate,
		fmt.Sprintf("date must be on or before %s", max.Format(time.RFC3339)),
		map[string]any{"max": max},
		optional(func(v any) bool {
			t, ok := v.(time.Time)
			return ok && !t.After(max)
		}))
}
