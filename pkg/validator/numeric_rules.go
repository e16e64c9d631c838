package validator

import "fmt"

// Bound returns a pointer to n for use as a Range limit.
func Bound(n float64) *float64 {
	return &n
}

// Range validates that a numeric value lies within [min, max].
// A nil limit leaves that side open. Arrays are checked element by element.
func Range(field string, min, max *float64) Rule {
	params := map[string]any{}
	var message string
	switch {
	case min != nil && max != nil:
		params["min"], params["max"] = *min, *max
		message = fmt.Sprintf("must be between %v and %v", *min, *max)
	case min != nil:
		params["min"] = *min
		message = fmt.Sprintf("must be at least %v", *min)
	case max != nil:
		params["max"] = *max
		message = fmt.Sprintf("must be at most %v", *max)
	default:
		message = "must be a number"
	}

	return newRule(field, CodeRange, message, params, optional(func(v any) bool {
		n, ok := toFloat(v)
		if !ok {
			return false
		}
		if min != nil && n < *min {
			return false
		}
		if max != nil && n > *max {
			return false
		}
		return true
	}))
}
