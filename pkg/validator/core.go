package validator

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ValidationError represents a single validation failure.
// Group is empty for failures that do not belong to a validation group.
type ValidationError struct {
	Field   string
	Code    string
	Message string
	Params  map[string]any
	Group   string
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Codes returns the error codes recorded for field.
func (ve ValidationErrors) Codes(field string) []string {
	var codes []string
	for _, err := range ve {
		if err.Field == field {
			codes = append(codes, err.Code)
		}
	}
	return codes
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// InGroup returns the errors tagged with the given group.
func (ve ValidationErrors) InGroup(group string) ValidationErrors {
	var errs ValidationErrors
	for _, err := range ve {
		if err.Group == group {
			errs = append(errs, err)
		}
	}
	return errs
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Lookup returns the normalized value of a field and whether it is set.
type Lookup func(field string) (any, bool)

// Rule is an executable check over one field of a record.
// Check receives the field's current value (nil when absent) and a Lookup
// for rules that compare against other fields.
type Rule struct {
	Field   string
	Reads   []string
	Code    string
	Message string
	Params  map[string]any
	Check   func(value any, lookup Lookup) bool
}

// Validate runs the rule against the values exposed by lookup.
// It returns the failure and false when the check does not pass.
func (r Rule) Validate(lookup Lookup) (ValidationError, bool) {
	v, ok := lookup(r.Field)
	if !ok {
		v = nil
	}
	if r.Check(v, lookup) {
		return ValidationError{}, true
	}
	return r.Failure(), false
}

// Failure returns the error entry the rule emits when it fails.
func (r Rule) Failure() ValidationError {
	params := make(map[string]any, len(r.Params)+1)
	maps.Copy(params, r.Params)
	params["field"] = r.Field
	return ValidationError{
		Field:   r.Field,
		Code:    r.Code,
		Message: r.Message,
		Params:  params,
	}
}

// Apply executes the rules against lookup and returns any validation errors.
func Apply(lookup Lookup, rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if failure, ok := rule.Validate(lookup); !ok {
			errs = append(errs, failure)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

func newRule(field, code, message string, params map[string]any, check func(any, Lookup) bool) Rule {
	return Rule{
		Field:   field,
		Reads:   []string{field},
		Code:    code,
		Message: message,
		Params:  params,
		Check:   check,
	}
}

// optional wraps a single-value check so that empty values pass and arrays
// are checked element by element.
func optional(check func(v any) bool) func(any, Lookup) bool {
	return func(v any, _ Lookup) bool {
		if isEmpty(v) {
			return true
		}
		if items, ok := v.([]any); ok {
			for _, item := range items {
				if !isEmpty(item) && !check(item) {
					return false
				}
			}
			return true
		}
		return check(v)
	}
}
