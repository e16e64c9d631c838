// Package constraint declares per-field validation constraints and compiles
// them into executable validator rules.
//
// A Property names a record field, lists its constraints and the validation
// groups its rules register into. Properties merge monotonically: merging a
// newer declaration over an older one keeps the older value for kinds the
// newer one does not mention and takes the newer value for every kind it
// does.
//
// # Usage
//
//	p := constraint.NewProperty("age",
//	    constraint.Required(),
//	    constraint.Range(0, 150),
//	).InGroups("adult")
//
//	rules, err := constraint.Compile(p)
//	if err != nil {
//	    // errors.Is(err, constraint.ErrCompilation)
//	}
//
// Compile emits one rule per constraint kind in a fixed order (required,
// email, url, pattern, tag, min_length, max_length, range, min_date,
// max_date, in_list, not_equal, same_as, unique, custom) regardless of the
// order in which constraints were declared, so error ordering is stable.
//
// # Declarations
//
// Properties can also be loaded from YAML:
//
//	properties:
//	  - name: age
//	    groups: [adult]
//	    constraints:
//	      required: true
//	      range: {min: 0, max: 150}
//	  - name: color
//	    constraints:
//	      tag: hexcolor
//
// Parameter values are normalized with spf13/cast, so "18", 18 and 18.0 are
// all accepted where a number is expected.
//
// # Error Handling
//
// An unknown constraint kind or a malformed parameter makes Compile return
// an error wrapping ErrCompilation and no rules at all. Malformed YAML
// documents produce errors wrapping ErrDeclaration.
package constraint
