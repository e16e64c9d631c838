package validation

import "github.com/dmitrymomot/formkit/pkg/validator"

// Sink receives error entries from a validation context.
type Sink interface {
	Append(entry validator.ValidationError)
}

// Context validates whole-record concerns that do not belong to a single
// field rule, such as "at least one contact method". It runs after the
// group's rules and appends failures to sink.
type Context[T any] interface {
	Validate(rec *T, sink Sink)
}

// ContextFunc adapts a function to Context.
type ContextFunc[T any] func(rec *T, sink Sink)

func (f ContextFunc[T]) Validate(rec *T, sink Sink) {
	f(rec, sink)
}

// groupSink tags appended entries with the group being validated.
type groupSink struct {
	group   string
	entries validator.ValidationErrors
}

func (s *groupSink) Append(entry validator.ValidationError) {
	entry.Group = s.group
	s.entries = append(s.entries, entry)
}
