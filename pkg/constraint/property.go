package constraint

import "slices"

// Property is the constraint declaration of one record field.
type Property struct {
	Name        string
	Constraints Set
	Groups      []string
}

// NewProperty declares constraints for the named field. A later constraint
// of the same kind replaces an earlier one.
func NewProperty(name string, constraints ...Constraint) Property {
	p := Property{Name: name}
	for _, c := range constraints {
		p.Constraints = p.Constraints.With(c)
	}
	return p
}

// InGroups returns a copy of p whose rules register into the named groups.
func (p Property) InGroups(groups ...string) Property {
	p.Groups = union(p.Groups, groups)
	return p
}

// With returns a copy of p with c added or replacing the same kind.
func (p Property) With(c Constraint) Property {
	p.Constraints = p.Constraints.With(c)
	return p
}

// Merge returns next merged over prev. Kinds present in next take next's
// value; kinds only in prev keep prev's value and position. Groups are the
// union of both, prev's first. Neither argument is modified.
func Merge(prev, next Property) Property {
	out := Property{
		Name:        prev.Name,
		Constraints: slices.Clone(prev.Constraints),
		Groups:      union(prev.Groups, next.Groups),
	}
	if next.Name != "" {
		out.Name = next.Name
	}
	for _, c := range next.Constraints {
		out.Constraints = out.Constraints.With(c)
	}
	return out
}

func union(a, b []string) []string {
	out := slices.Clone(a)
	for _, g := range b {
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}
