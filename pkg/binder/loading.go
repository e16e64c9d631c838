package binder

import (
	"fmt"
	"slices"
)

// Reason classifies a loading error.
type Reason string

const (
	ReasonParse   Reason = "parse_failure"
	ReasonDecode  Reason = "decode_failure"
	ReasonTooMany Reason = "too_many_values"
)

// LoadingError records why raw input could not be stored in a field.
type LoadingError struct {
	Field  string
	Values []string
	Reason Reason
	Err    error
}

func (e LoadingError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
}

func (e LoadingError) Unwrap() error {
	return e.Err
}

// Message returns a short description of the failure suitable for display
// next to the field.
func (e LoadingError) Message() string {
	switch e.Reason {
	case ReasonTooMany:
		return fmt.Sprintf("too many values (%d)", len(e.Values))
	case ReasonDecode:
		return "value could not be decoded"
	}
	if len(e.Values) == 1 {
		return fmt.Sprintf("invalid value %q", e.Values[0])
	}
	return fmt.Sprintf("invalid values %q", e.Values)
}

// Tracker keeps the latest loading error per field. The zero value is ready
// to use. It is not safe for concurrent use.
type Tracker struct {
	errs  map[string]LoadingError
	order []string
}

// Record stores e, replacing any earlier error for the same field.
func (t *Tracker) Record(e LoadingError) {
	if t.errs == nil {
		t.errs = make(map[string]LoadingError)
	}
	if _, ok := t.errs[e.Field]; !ok {
		t.order = append(t.order, e.Field)
	}
	t.errs[e.Field] = e
}

// Clear drops the error recorded for field, if any.
func (t *Tracker) Clear(field string) {
	if _, ok := t.errs[field]; !ok {
		return
	}
	delete(t.errs, field)
	t.order = slices.DeleteFunc(t.order, func(f string) bool { return f == field })
}

func (t *Tracker) ClearAll() {
	t.errs = nil
	t.order = nil
}

// Get returns the error recorded for field.
func (t *Tracker) Get(field string) (LoadingError, bool) {
	e, ok := t.errs[field]
	return e, ok
}

// Has reports whether field has a loading error.
func (t *Tracker) Has(field string) bool {
	_, ok := t.errs[field]
	return ok
}

// Messages returns the error text for field, or false when none is recorded.
func (t *Tracker) Messages(field string) ([]string, bool) {
	e, ok := t.errs[field]
	if !ok {
		return nil, false
	}
	return []string{e.Message()}, true
}

// Fields returns the fields with errors in the order they first failed.
func (t *Tracker) Fields() []string {
	return slices.Clone(t.order)
}

// Errors returns the recorded errors in field order.
func (t *Tracker) Errors() []LoadingError {
	out := make([]LoadingError, 0, len(t.order))
	for _, f := range t.order {
		out = append(out, t.errs[f])
	}
	return out
}

func (t *Tracker) Len() int {
	return len(t.errs)
}
