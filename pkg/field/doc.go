// Package field describes the bindable fields of a record type.
//
// A record type declares its fields explicitly by implementing Declarer.
// Every field is built from a typed constructor and a pointer projection, so
// binding never walks struct tags with reflection:
//
//	type Signup struct {
//	    Email    string
//	    Age      int
//	    Birthday time.Time
//	    Plan     Plan
//	    Tags     []string
//	}
//
//	func (Signup) DeclareFields(d *field.Declaration[Signup]) {
//	    d.Add(
//	        field.String("email", func(s *Signup) *string { return &s.Email }),
//	        field.Int("age", func(s *Signup) *int { return &s.Age }),
//	        field.Date("birthday", func(s *Signup) *time.Time { return &s.Birthday }).WithFormat("2006-01-02"),
//	        field.Enum("plan", func(s *Signup) *Plan { return &s.Plan }, PlanFree, PlanPro),
//	        field.Strings("tags", func(s *Signup) *[]string { return &s.Tags }),
//	    )
//	}
//
// Discover[Signup]() builds the ordered field Set once per type and caches it
// for the lifetime of the process.
//
// # Embedded records
//
// Embed lifts the fields of an embedded record into the embedding one. The
// embedding type's own fields come first and shadow same-named fields of the
// embedded record; a shadowing field must keep the flow direction of the
// field it overrides.
//
// # Values
//
// Field.Get and Field.Set exchange normalized values: string, int64, uint64,
// float64, bool, rune, time.Time, uuid.UUID, []byte, []rune, the decoded
// nested value, or []any of those for array fields. An unset pointer or nil
// slice reads as absent.
//
// # Errors
//
// Malformed declarations fail discovery with an error wrapping ErrDiscovery.
// The failure is cached like a successful result and is never retried.
package field
