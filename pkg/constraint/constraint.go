package constraint

import (
	"slices"
	"time"
)

// Kind names a constraint.
type Kind string

const (
	KindRequired  Kind = "required"
	KindEmail     Kind = "email"
	KindURL       Kind = "url"
	KindPattern   Kind = "pattern"
	KindTag       Kind = "tag"
	KindMinLength Kind = "min_length"
	KindMaxLength Kind = "max_length"
	KindRange     Kind = "range"
	KindMinDate   Kind = "min_date"
	KindMaxDate   Kind = "max_date"
	KindInList    Kind = "in_list"
	KindNotEqual  Kind = "not_equal"
	KindSameAs    Kind = "same_as"
	KindUnique    Kind = "unique"
	KindCustom    Kind = "custom"
)

// order is the compilation order of constraint kinds.
var order = []Kind{
	KindRequired,
	KindEmail,
	KindURL,
	KindPattern,
	KindTag,
	KindMinLength,
	KindMaxLength,
	KindRange,
	KindMinDate,
	KindMaxDate,
	KindInList,
	KindNotEqual,
	KindSameAs,
	KindUnique,
	KindCustom,
}

// Kinds returns every known constraint kind in compilation order.
func Kinds() []Kind {
	return slices.Clone(order)
}

// Known reports whether k is a supported constraint kind.
func (k Kind) Known() bool {
	return slices.Contains(order, k)
}

// Constraint is one named, parameterized rule source.
type Constraint struct {
	Kind  Kind
	Value any
}

// Check is the parameter of a custom constraint.
type Check struct {
	Code string
	Func func(v any) bool
}

func Required() Constraint { return Constraint{Kind: KindRequired, Value: true} }

// Optional cancels a previously declared required constraint when merged.
func Optional() Constraint { return Constraint{Kind: KindRequired, Value: false} }

func Email() Constraint { return Constraint{Kind: KindEmail, Value: true} }

// URL requires an absolute URL, limited to schemes when any are given.
func URL(schemes ...string) Constraint {
	if len(schemes) == 0 {
		return Constraint{Kind: KindURL, Value: true}
	}
	return Constraint{Kind: KindURL, Value: schemes}
}

func Pattern(expr string) Constraint { return Constraint{Kind: KindPattern, Value: expr} }

// Tag delegates to a go-playground/validator tag such as "hexcolor".
func Tag(tag string) Constraint { return Constraint{Kind: KindTag, Value: tag} }

func MinLength(n int) Constraint { return Constraint{Kind: KindMinLength, Value: n} }

func MaxLength(n int) Constraint { return Constraint{Kind: KindMaxLength, Value: n} }

// Range bounds a number on both sides.
func Range(min, max float64) Constraint {
	return Constraint{Kind: KindRange, Value: map[string]any{"min": min, "max": max}}
}

// AtLeast bounds a number from below only.
func AtLeast(min float64) Constraint {
	return Constraint{Kind: KindRange, Value: map[string]any{"min": min}}
}

// AtMost bounds a number from above only.
func AtMost(max float64) Constraint {
	return Constraint{Kind: KindRange, Value: map[string]any{"max": max}}
}

func MinDate(t time.Time) Constraint { return Constraint{Kind: KindMinDate, Value: t} }

func MaxDate(t time.Time) Constraint { return Constraint{Kind: KindMaxDate, Value: t} }

func InList(values ...string) Constraint { return Constraint{Kind: KindInList, Value: values} }

func NotEqual(v any) Constraint { return Constraint{Kind: KindNotEqual, Value: v} }

// SameAs requires the field to equal another field of the record.
func SameAs(other string) Constraint { return Constraint{Kind: KindSameAs, Value: other} }

func Unique() Constraint { return Constraint{Kind: KindUnique, Value: true} }

// Custom attaches an arbitrary check emitting code on failure.
func Custom(code string, fn func(v any) bool) Constraint {
	return Constraint{Kind: KindCustom, Value: Check{Code: code, Func: fn}}
}

// Set is an ordered list of constraints with at most one entry per kind.
type Set []Constraint

// Get returns the constraint of the given kind.
func (s Set) Get(k Kind) (Constraint, bool) {
	for _, c := range s {
		if c.Kind == k {
			return c, true
		}
	}
	return Constraint{}, false
}

func (s Set) Has(k Kind) bool {
	_, ok := s.Get(k)
	return ok
}

// Kinds returns the kinds in declaration order.
func (s Set) Kinds() []Kind {
	out := make([]Kind, len(s))
	for i, c := range s {
		out[i] = c.Kind
	}
	return out
}

// With returns a copy of s where c replaces the constraint of the same kind
// in place, or is appended when s has none.
func (s Set) With(c Constraint) Set {
	out := slices.Clone(s)
	for i := range out {
		if out[i].Kind == c.Kind {
			out[i] = c
			return out
		}
	}
	return append(out, c)
}
