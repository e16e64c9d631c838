package field

import (
	"errors"
	"time"
	"unsafe"

	"github.com/google/uuid"
)

// Signed is the set of signed integer field types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer field types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Floating is the set of floating point field types.
type Floating interface {
	~float32 | ~float64
}

var (
	errNilAccessor = errors.New("nil accessor")
	errEmptyEnum   = errors.New("enum declares no constants")
)

// conv converts between a Go field type and its normalized representation.
type conv[V any] struct {
	to   func(V) any
	from func(any) V
}

func bitsOf[N any]() int {
	var zero N
	return int(unsafe.Sizeof(zero)) * 8
}

func stringConv[S ~string]() conv[S] {
	return conv[S]{
		to:   func(s S) any { return string(s) },
		from: func(v any) S { s, _ := v.(string); return S(s) },
	}
}

func signedConv[N Signed]() conv[N] {
	return conv[N]{
		to:   func(n N) any { return int64(n) },
		from: func(v any) N { n, _ := v.(int64); return N(n) },
	}
}

func unsignedConv[N Unsigned]() conv[N] {
	return conv[N]{
		to:   func(n N) any { return uint64(n) },
		from: func(v any) N { n, _ := v.(uint64); return N(n) },
	}
}

func floatConv[N Floating]() conv[N] {
	return conv[N]{
		to:   func(n N) any { return float64(n) },
		from: func(v any) N { n, _ := v.(float64); return N(n) },
	}
}

// identity serves kinds whose normalized form is the Go type itself.
func identity[V any]() conv[V] {
	return conv[V]{
		to:   func(v V) any { return v },
		from: func(v any) V { x, _ := v.(V); return x },
	}
}

func newField[T any](name string, kind Kind) Field[T] {
	return Field[T]{
		Descriptor: Descriptor{Name: name, Kind: kind, Direction: In},
		get:        func(*T) (any, bool) { return nil, false },
		set:        func(*T, any) {},
	}
}

func scalar[T, V any](name string, kind Kind, ref func(*T) *V, c conv[V]) Field[T] {
	f := newField[T](name, kind)
	if ref == nil {
		f.err = errNilAccessor
		return f
	}
	f.get = func(rec *T) (any, bool) { return c.to(*ref(rec)), true }
	f.set = func(rec *T, v any) { *ref(rec) = c.from(v) }
	return f
}

func boxed[T, V any](name string, kind Kind, ref func(*T) **V, c conv[V]) Field[T] {
	f := newField[T](name, kind)
	f.Boxed = true
	if ref == nil {
		f.err = errNilAccessor
		return f
	}
	f.get = func(rec *T) (any, bool) {
		p := *ref(rec)
		if p == nil {
			return nil, false
		}
		return c.to(*p), true
	}
	f.set = func(rec *T, v any) {
		if v == nil {
			*ref(rec) = nil
			return
		}
		x := c.from(v)
		*ref(rec) = &x
	}
	return f
}

func slice[T, V any](name string, kind Kind, ref func(*T) *[]V, c conv[V]) Field[T] {
	f := newField[T](name, kind)
	f.Array = true
	if ref == nil {
		f.err = errNilAccessor
		return f
	}
	f.get = func(rec *T) (any, bool) {
		s := *ref(rec)
		if s == nil {
			return nil, false
		}
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = c.to(x)
		}
		return out, true
	}
	f.set = func(rec *T, v any) {
		items, ok := v.([]any)
		if !ok {
			*ref(rec) = nil
			return
		}
		s := make([]V, len(items))
		for i, item := range items {
			s[i] = c.from(item)
		}
		*ref(rec) = s
	}
	return f
}

func nestedDecoder[V any]() func(func(dst any) error) (any, error) {
	return func(decode func(dst any) error) (any, error) {
		var v V
		if err := decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func enumValues[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// String declares a string field.
func String[T any, S ~string](name string, ref func(*T) *S) Field[T] {
	return scalar(name, KindString, ref, stringConv[S]())
}

// Int declares a signed integer field.
func Int[T any, N Signed](name string, ref func(*T) *N) Field[T] {
	f := scalar(name, KindInt, ref, signedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Uint declares an unsigned integer field.
func Uint[T any, N Unsigned](name string, ref func(*T) *N) Field[T] {
	f := scalar(name, KindUint, ref, unsignedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Float declares a floating point field.
func Float[T any, N Floating](name string, ref func(*T) *N) Field[T] {
	f := scalar(name, KindFloat, ref, floatConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Bool declares a boolean field.
func Bool[T any](name string, ref func(*T) *bool) Field[T] {
	return scalar(name, KindBool, ref, identity[bool]())
}

// Char declares a single character field.
func Char[T any](name string, ref func(*T) *rune) Field[T] {
	f := scalar(name, KindChar, ref, identity[rune]())
	f.Bits = 32
	return f
}

// Date declares a time field. Use WithFormat to set a layout.
func Date[T any](name string, ref func(*T) *time.Time) Field[T] {
	return scalar(name, KindDate, ref, identity[time.Time]())
}

// Enum declares a field restricted to the given string constants.
func Enum[T any, E ~string](name string, ref func(*T) *E, values ...E) Field[T] {
	f := scalar(name, KindEnum, ref, stringConv[E]())
	f.Enum = enumValues(values)
	if len(values) == 0 && f.err == nil {
		f.err = errEmptyEnum
	}
	return f
}

// UUID declares a UUID field.
func UUID[T any](name string, ref func(*T) *uuid.UUID) Field[T] {
	return scalar(name, KindUUID, ref, identity[uuid.UUID]())
}

// Bytes declares a byte array field holding the raw text of the first value.
func Bytes[T any](name string, ref func(*T) *[]byte) Field[T] {
	return scalar(name, KindBytes, ref, identity[[]byte]())
}

// Chars declares a character array field holding the runes of the first value.
func Chars[T any](name string, ref func(*T) *[]rune) Field[T] {
	return scalar(name, KindChars, ref, identity[[]rune]())
}

// Nested declares a field holding a value decoded from an opaque token.
func Nested[T, V any](name string, ref func(*T) *V) Field[T] {
	f := scalar(name, KindNested, ref, identity[V]())
	f.decodeNested = nestedDecoder[V]()
	return f
}

// StringPtr declares an optional string field.
func StringPtr[T any, S ~string](name string, ref func(*T) **S) Field[T] {
	return boxed(name, KindString, ref, stringConv[S]())
}

// IntPtr declares an optional signed integer field.
func IntPtr[T any, N Signed](name string, ref func(*T) **N) Field[T] {
	f := boxed(name, KindInt, ref, signedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// UintPtr declares an optional unsigned integer field.
func UintPtr[T any, N Unsigned](name string, ref func(*T) **N) Field[T] {
	f := boxed(name, KindUint, ref, unsignedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// FloatPtr declares an optional floating point field.
func FloatPtr[T any, N Floating](name string, ref func(*T) **N) Field[T] {
	f := boxed(name, KindFloat, ref, floatConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// BoolPtr declares an optional boolean field.
func BoolPtr[T any](name string, ref func(*T) **bool) Field[T] {
	return boxed(name, KindBool, ref, identity[bool]())
}

// DatePtr declares an optional time field.
func DatePtr[T any](name string, ref func(*T) **time.Time) Field[T] {
	return boxed(name, KindDate, ref, identity[time.Time]())
}

// Strings declares a multi-valued string field.
func Strings[T any, S ~string](name string, ref func(*T) *[]S) Field[T] {
	return slice(name, KindString, ref, stringConv[S]())
}

// Ints declares a multi-valued signed integer field.
func Ints[T any, N Signed](name string, ref func(*T) *[]N) Field[T] {
	f := slice(name, KindInt, ref, signedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Uints declares a multi-valued unsigned integer field.
func Uints[T any, N Unsigned](name string, ref func(*T) *[]N) Field[T] {
	f := slice(name, KindUint, ref, unsignedConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Floats declares a multi-valued floating point field.
func Floats[T any, N Floating](name string, ref func(*T) *[]N) Field[T] {
	f := slice(name, KindFloat, ref, floatConv[N]())
	f.Bits = bitsOf[N]()
	return f
}

// Bools declares a multi-valued boolean field.
func Bools[T any](name string, ref func(*T) *[]bool) Field[T] {
	return slice(name, KindBool, ref, identity[bool]())
}

// Dates declares a multi-valued time field; every element uses the same layout.
func Dates[T any](name string, ref func(*T) *[]time.Time) Field[T] {
	return slice(name, KindDate, ref, identity[time.Time]())
}

// Enums declares a multi-valued enum field.
func Enums[T any, E ~string](name string, ref func(*T) *[]E, values ...E) Field[T] {
	f := slice(name, KindEnum, ref, stringConv[E]())
	f.Enum = enumValues(values)
	if len(values) == 0 && f.err == nil {
		f.err = errEmptyEnum
	}
	return f
}

// UUIDs declares a multi-valued UUID field.
func UUIDs[T any](name string, ref func(*T) *[]uuid.UUID) Field[T] {
	return slice(name, KindUUID, ref, identity[uuid.UUID]())
}

// NestedSlice declares a multi-valued nested field, one token per element.
func NestedSlice[T, V any](name string, ref func(*T) *[]V) Field[T] {
	f := slice(name, KindNested, ref, identity[V]())
	f.decodeNested = nestedDecoder[V]()
	return f
}
