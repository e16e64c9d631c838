package validator

import "fmt"

// SameAs validates that a field holds the same value as other, as used for
// password or email confirmation fields.
func SameAs(field, other string) Rule {
	r := newRule(field, CodeSameAs,
		fmt.Sprintf("must match %s", other),
		map[string]any{"other": other},
		func(v any, lookup Lookup) bool {
			o, ok := lookup(other)
			if !ok {
				o = nil
			}
			if isEmpty(v) && isEmpty(o) {
				return true
			}
			return equalValues(v, o)
		})
	r.Reads = append(r.Reads, other)
	return r
}

// Unique validates that the elements of a multi-valued field are distinct.
// Single values always pass.
func Unique(field string) Rule {
	return newRule(field, CodeUnique, "must not contain duplicates", nil, func(v any, _ Lookup) bool {
		items, ok := v.([]any)
		if !ok {
			return true
		}
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if equalValues(items[i], items[j]) {
					return false
				}
			}
		}
		return true
	})
}

// Custom wraps an arbitrary single-value check. Empty values pass unless
// the check is paired with Required.
func Custom(field, code string, check func(v any) bool) Rule {
	return newRule(field, code, "is invalid", nil, optional(check))
}
