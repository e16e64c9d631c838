package field

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/memo"
)

// Declarer is implemented by record types that declare their bindable fields.
// DeclareFields is called on the zero value of T, once per process.
type Declarer[T any] interface {
	DeclareFields(d *Declaration[T])
}

// Declaration collects the fields a record type declares.
type Declaration[T any] struct {
	own     []Field[T]
	parents []embedded[T]
}

type embedded[T any] struct {
	origin string
	fields []Field[T]
	err    error
}

// Add declares fields directly on T.
func (d *Declaration[T]) Add(fields ...Field[T]) *Declaration[T] {
	d.own = append(d.own, fields...)
	return d
}

// Embed lifts the fields of the embedded record P into T's declaration.
// ref must return a non-nil *P for any record it is given; for pointer
// embeddings allocate on demand.
func Embed[T any, P Declarer[P]](d *Declaration[T], ref func(*T) *P) {
	origin := typeName[P]()
	set, err := Discover[P]()
	if err != nil {
		d.parents = append(d.parents, embedded[T]{origin: origin, err: err})
		return
	}
	if ref == nil {
		d.parents = append(d.parents, embedded[T]{
			origin: origin,
			err:    fmt.Errorf("%w: %s: embedding %s: %v", ErrDiscovery, typeName[T](), origin, errNilAccessor),
		})
		return
	}

	lifted := make([]Field[T], 0, set.Len())
	for _, f := range set.fields {
		lifted = append(lifted, lift(f, ref, origin))
	}
	d.parents = append(d.parents, embedded[T]{origin: origin, fields: lifted})
}

func lift[T, P any](f Field[P], ref func(*T) *P, origin string) Field[T] {
	out := Field[T]{Descriptor: f.Descriptor, err: f.err}
	if out.Origin == "" {
		out.Origin = origin
	}
	out.get = func(rec *T) (any, bool) { return f.get(ref(rec)) }
	out.set = func(rec *T, v any) { f.set(ref(rec), v) }
	return out
}

// Set is the ordered, immutable field table of a record type.
type Set[T any] struct {
	typeName string
	fields   []Field[T]
	index    map[string]int
}

// TypeName returns the name of the record type the set describes.
func (s *Set[T]) TypeName() string { return s.typeName }

// Len returns the number of fields.
func (s *Set[T]) Len() int { return len(s.fields) }

// Fields returns the fields in discovery order.
func (s *Set[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in discovery order.
func (s *Set[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the field with the given name.
func (s *Set[T]) Lookup(name string) (Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Has reports whether the set contains a field with the given name.
func (s *Set[T]) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

var descriptors memo.Cache[reflect.Type, any]

// Discover returns the cached field set of T, building it on first use.
// Concurrent first calls converge on the same set or the same error.
func Discover[T Declarer[T]]() (*Set[T], error) {
	v, err := descriptors.Get(reflect.TypeFor[T](), func() (any, error) {
		var zero T
		d := &Declaration[T]{}
		zero.DeclareFields(d)
		return build(typeName[T](), d)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Set[T]), nil
}

// NewSet builds an uncached field set from explicit fields. It applies the
// same checks as Discover.
func NewSet[T any](fields ...Field[T]) (*Set[T], error) {
	return build(typeName[T](), &Declaration[T]{own: fields})
}

func build[T any](name string, d *Declaration[T]) (*Set[T], error) {
	s := &Set[T]{
		typeName: name,
		index:    make(map[string]int, len(d.own)),
	}

	for _, f := range d.own {
		if err := check(name, f); err != nil {
			return nil, err
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s: field %q declared twice", ErrDiscovery, name, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	own := len(s.fields)
	for _, p := range d.parents {
		if p.err != nil {
			return nil, p.err
		}
		for _, f := range p.fields {
			if err := check(name, f); err != nil {
				return nil, err
			}
			i, shadowed := s.index[f.Name]
			if !shadowed {
				s.index[f.Name] = len(s.fields)
				s.fields = append(s.fields, f)
				continue
			}
			if i < own && s.fields[i].Direction != f.Direction {
				return nil, fmt.Errorf("%w: %s: field %q overrides %s.%s with direction %s, want %s",
					ErrDiscovery, name, f.Name, f.Origin, f.Name, s.fields[i].Direction, f.Direction)
			}
		}
	}

	return s, nil
}

func check[T any](typ string, f Field[T]) error {
	switch {
	case f.Name == "":
		return fmt.Errorf("%w: %s: field with empty name", ErrDiscovery, typ)
	case f.err != nil:
		return fmt.Errorf("%w: %s: field %q: %v", ErrDiscovery, typ, f.Name, f.err)
	case !f.Direction.valid():
		return fmt.Errorf("%w: %s: field %q has invalid direction %d", ErrDiscovery, typ, f.Name, f.Direction)
	}
	return nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
