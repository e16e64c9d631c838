// Package validation ties binding and constraint validation together around
// one record.
//
// An Engine owns a record instance, the constraint declarations of its
// fields, the rules compiled from them and the error entries produced by
// validation passes. Rules are organized into named groups so that a
// workflow step validates only what it shows:
//
//	e, err := validation.New(&form)
//	if err != nil {
//	    // the record type declares its fields incorrectly
//	}
//
//	err = e.AddConstrainedProperties(
//	    constraint.NewProperty("email", constraint.Required(), constraint.Email()).InGroups("step1"),
//	    constraint.NewProperty("age", constraint.Required(), constraint.Range(0, 150)).InGroups("step2"),
//	    constraint.NewProperty("terms", constraint.Required()),
//	)
//
//	e.Populate(values)
//	ok, err := e.ValidateGroup("step1")
//	_ = e.FocusGroup("step1")
//	for _, ve := range e.Errors() {
//	    // ve.Field, ve.Code, ve.Params
//	}
//
// # Groups
//
// A property declared without groups is ungrounded: its rules run with every
// group. Validating a group first drops the entries previously tagged with
// it, so running it twice gives the same result. Focusing a group filters
// Errors to that group and the ungrounded entries without discarding what
// other groups found. ResetGroup drops a single group's entries.
//
// # Re-registration
//
// Declaring constraints for a field again merges the new declaration over
// the stored one and recompiles the field's rules from scratch; the old
// rules are discarded. GenerateConstrainedPropertyRules previews the result
// without changing anything.
//
// # Loading errors
//
// Raw input that cannot be coerced never aborts Populate. The field keeps
// its value, LoadingErrors reports the failure, and validation emits one
// validation.invalid entry for the field instead of running its rules.
//
// # Error Handling
//
// Group misuse returns errors wrapping ErrUnknownGroup, ErrDuplicateGroup
// or ErrInvalidGroupName and leaves the engine unchanged. Malformed
// declarations return errors wrapping constraint.ErrCompilation and leave
// that field without rules. Rule failures are error entries, not errors;
// Err exposes the visible ones as validator.ValidationErrors.
package validation
