// Package validator provides executable validation rules and the error
// entries they produce.
//
// A Rule pairs a Check function with the structured error it emits when the
// check fails. Unlike eagerly bound checks, a Rule reads its value at
// execution time through a Lookup, so the same compiled rules can be run
// again and again against a record whose fields keep changing.
//
// Rules operate on normalized values (see pkg/field): strings, int64,
// uint64, float64, bool, time.Time, uuid.UUID, byte and rune slices, and
// []any for multi-valued fields. A nil value means the field is absent.
//
// # Error codes
//
// Every failure carries a stable Code (validation.required,
// validation.range, ...) and a Params map suitable for translation by a
// collaborator. Message holds a default English text for logs and debugging.
//
// # Usage
//
//	values := map[string]any{"email": "", "age": int64(200)}
//	lookup := func(field string) (any, bool) { v, ok := values[field]; return v, ok }
//
//	err := validator.Apply(lookup,
//	    validator.Required("email"),
//	    validator.Range("age", validator.Bound(0), validator.Bound(150)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    verrs.Has("email") // true
//	}
//
// # Empty values
//
// Only Required fails on absent or empty values. Every other rule passes
// when the value is nil, an empty string or an empty array, so optional
// fields are validated only when filled in.
//
// # Error Handling
//
// ValidationErrors implements error, so it works with errors.As. Individual
// entries can be inspected with Has, Get, GetErrors, Codes and Fields.
package validator
