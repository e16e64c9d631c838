package field

// Kind identifies the element type of a field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindUint
	KindFloat
	KindBool
	KindChar
	KindDate
	KindEnum
	KindUUID
	KindBytes
	KindChars
	KindNested
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindBool:   "bool",
	KindChar:   "char",
	KindDate:   "date",
	KindEnum:   "enum",
	KindUUID:   "uuid",
	KindBytes:  "bytes",
	KindChars:  "chars",
	KindNested: "nested",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Direction tells whether a field is read from input, written to output, or both.
type Direction uint8

const (
	In Direction = 1 << iota
	Out

	InOut = In | Out
)

// Reads reports whether the field is populated from raw input.
func (d Direction) Reads() bool { return d&In != 0 }

// Writes reports whether the field is rendered back as output.
func (d Direction) Writes() bool { return d&Out != 0 }

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return "invalid"
	}
}

func (d Direction) valid() bool {
	return d == In || d == Out || d == InOut
}

// Descriptor is the static metadata of one bindable field.
type Descriptor struct {
	Name      string
	Kind      Kind
	Array     bool
	Boxed     bool
	Bits      int
	Direction Direction
	// Format is the time layout for date fields; empty means the binder default.
	Format string
	// Enum lists the accepted constants of an enum field.
	Enum []string
	// Origin names the embedded record type that declared the field,
	// empty when the field is declared directly.
	Origin string

	decodeNested func(decode func(dst any) error) (any, error)
}

// Inherited reports whether the field comes from an embedded record.
func (d Descriptor) Inherited() bool {
	return d.Origin != ""
}

// DecodeNested allocates a fresh value of a nested field's type, lets decode
// fill it through a pointer and returns the decoded value.
func (d Descriptor) DecodeNested(decode func(dst any) error) (any, error) {
	if d.Kind != KindNested || d.decodeNested == nil {
		return nil, ErrNotNested
	}
	return d.decodeNested(decode)
}

// AcceptsEnum reports whether s is one of the enum constants.
func (d Descriptor) AcceptsEnum(s string) bool {
	for _, v := range d.Enum {
		if v == s {
			return true
		}
	}
	return false
}

// Field binds a Descriptor to accessors on records of type T.
type Field[T any] struct {
	Descriptor

	get func(*T) (any, bool)
	set func(*T, any)
	err error
}

// Get returns the normalized value of the field on rec.
// It reports false when the field is unset (nil pointer or nil slice).
func (f Field[T]) Get(rec *T) (any, bool) {
	return f.get(rec)
}

// Set stores a normalized value on rec. A nil value resets the field to its
// zero value.
func (f Field[T]) Set(rec *T, v any) {
	f.set(rec, v)
}

// WithDirection returns a copy of the field with the given flow direction.
func (f Field[T]) WithDirection(d Direction) Field[T] {
	f.Direction = d
	return f
}

// WithFormat returns a copy of the field with an explicit time layout.
// It only affects date fields.
func (f Field[T]) WithFormat(layout string) Field[T] {
	f.Format = layout
	return f
}
