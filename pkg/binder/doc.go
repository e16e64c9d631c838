// Package binder converts flat raw string inputs into typed record fields.
//
// Records describe their fields through pkg/field. The binder walks those
// descriptors, looks up each input field's raw values by name and coerces them
// with a dispatch table keyed by field kind. Coercion never aborts: a field
// that cannot be converted keeps its current value and the failure is kept in
// a Tracker, one entry per field, the latest replacing earlier ones.
//
// # Basic Usage
//
//	type Signup struct {
//	    Email string
//	    Age   int
//	    Tags  []string
//	}
//
//	func (Signup) DeclareFields(d *field.Declaration[Signup]) {
//	    d.Add(
//	        field.String("email", func(s *Signup) *string { return &s.Email }),
//	        field.Int("age", func(s *Signup) *int { return &s.Age }),
//	        field.Strings("tags", func(s *Signup) *[]string { return &s.Tags }),
//	    )
//	}
//
//	b, err := binder.New[Signup]()
//	if err != nil {
//	    // malformed field declaration
//	}
//
//	values, err := binder.FormValues(r)
//	var tracker binder.Tracker
//	var s Signup
//	b.Populate(&s, values, &tracker)
//	if msgs, ok := tracker.Messages("age"); ok {
//	    // age was not a number
//	}
//
// # Coercion Rules
//
//   - A missing key or an empty value list leaves the field untouched.
//   - Scalars use the first value; the rest are ignored.
//   - An empty string sets a non-string scalar to its zero value, or nil for
//     pointer fields.
//   - Arrays coerce every value; one bad element leaves the whole field
//     untouched and records a single error.
//   - Dates use the field's layout or Config.DateLayout.
//   - Nested values are decoded by a Codec, base64url JSON by default.
//
// # Sources
//
// FormValues, QueryValues and PathValues extract Values from an
// *http.Request; Merge combines them, later sources winning. Path parameter
// parsing is left to the router; PathValues only asks it for named segments.
//
// # Configuration
//
// Config can be loaded from the environment with LoadConfig:
//
//   - FORMKIT_DATE_LAYOUT (default "2006-01-02 15:04")
//   - FORMKIT_NORMALIZE_UNICODE (default true, NFC)
//   - FORMKIT_TRIM_SPACE (default false)
//   - FORMKIT_MAX_VALUES (default 1000)
//
// # Error Handling
//
// Request extraction returns errors wrapping ErrMissingContentType,
// ErrUnsupportedMediaType, ErrInvalidForm, ErrInvalidQuery or ErrInvalidPath.
// Coercion failures are LoadingError values with a Reason of parse_failure,
// decode_failure or too_many_values; they are recorded, never returned.
package binder
