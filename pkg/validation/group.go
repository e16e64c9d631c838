package validation

import (
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// registry is the engine side a group needs: compiled rules per field and
// creation of uniquely named groups.
type registry interface {
	fieldRules(field string) []validator.Rule
	newGroup(name string, parent *Group) (*Group, error)
}

// Group is a named subset of validation rules. Its rules are the compiled
// rules of its subjects, in subject order, followed by rules added directly.
// Subjects and rules added to a sub-group are added to its parents as well.
type Group struct {
	name     string
	parent   *Group
	children []*Group
	subjects []string
	rules    []validator.Rule
	focused  bool
	reg      registry
}

func (g *Group) Name() string { return g.name }

// Parent returns the enclosing group, or nil for a top-level group.
func (g *Group) Parent() *Group { return g.parent }

// Focused reports whether the group's errors are the engine's active view.
func (g *Group) Focused() bool { return g.focused }

// Groups returns the direct sub-groups.
func (g *Group) Groups() []*Group { return slices.Clone(g.children) }

// Subjects returns the fields whose rules belong to the group.
func (g *Group) Subjects() []string { return slices.Clone(g.subjects) }

// HasSubject reports whether field belongs to the group.
func (g *Group) HasSubject(field string) bool {
	return slices.Contains(g.subjects, field)
}

// AddSubject adds fields to the group and its parents. Their current and
// future compiled rules run when the group is validated.
func (g *Group) AddSubject(fields ...string) *Group {
	for p := g; p != nil; p = p.parent {
		for _, f := range fields {
			if !p.HasSubject(f) {
				p.subjects = append(p.subjects, f)
			}
		}
	}
	return g
}

// AddRule adds rules that are not derived from constraints.
func (g *Group) AddRule(rules ...validator.Rule) *Group {
	for p := g; p != nil; p = p.parent {
		p.rules = append(p.rules, rules...)
	}
	return g
}

// AddGroup creates a sub-group. Names are unique across the whole engine.
func (g *Group) AddGroup(name string) (*Group, error) {
	return g.reg.newGroup(name, g)
}

// Rules returns the group's rules in execution order.
func (g *Group) Rules() []validator.Rule {
	var out []validator.Rule
	for _, f := range g.subjects {
		out = append(out, g.reg.fieldRules(f)...)
	}
	return append(out, g.rules...)
}
