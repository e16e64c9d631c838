package binder

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/field"
)

type options struct {
	cfg    Config
	codec  Codec
	prefix string
}

// Option configures a Binder.
type Option func(*options)

// WithConfig sets the coercion configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithCodec sets the codec used for nested values.
func WithCodec(c Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithPrefix makes the binder read and render keys as prefix+name, for
// records embedded under a parent form (e.g. "billing_").
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Binder populates records of type T from raw values and renders their
// output fields back.
type Binder[T any] struct {
	fields  *field.Set[T]
	coercer *Coercer
	prefix  string
}

// New returns a binder over the discovered fields of T.
func New[T field.Declarer[T]](opts ...Option) (*Binder[T], error) {
	set, err := field.Discover[T]()
	if err != nil {
		return nil, err
	}
	return NewWithFields(set, opts...), nil
}

// NewWithFields returns a binder over an explicit field set.
func NewWithFields[T any](set *field.Set[T], opts ...Option) *Binder[T] {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Binder[T]{
		fields:  set,
		coercer: NewCoercer(o.cfg, o.codec),
		prefix:  o.prefix,
	}
}

// Fields returns the field set the binder works on.
func (b *Binder[T]) Fields() *field.Set[T] { return b.fields }

// Key returns the raw input key of the named field.
func (b *Binder[T]) Key(name string) string { return b.prefix + name }

// Populate stores values into the input fields of rec. Fields without a key
// in values are left untouched. A field that fails to coerce keeps its
// current value and its error replaces any earlier one in tracker; a field
// that coerces successfully has its tracked error cleared. The errors of
// this pass are returned for logging; they are never fatal.
func (b *Binder[T]) Populate(rec *T, values Values, tracker *Tracker) []LoadingError {
	var failed []LoadingError
	for _, f := range b.fields.Fields() {
		if !f.Direction.Reads() {
			continue
		}
		raw, ok := values[b.Key(f.Name)]
		if !ok || len(raw) == 0 {
			continue
		}

		v, ok, lerr := b.coercer.Coerce(raw, f.Descriptor)
		if lerr != nil {
			if tracker != nil {
				tracker.Record(*lerr)
			}
			failed = append(failed, *lerr)
			continue
		}
		if !ok {
			continue
		}
		f.Set(rec, v)
		if tracker != nil {
			tracker.Clear(f.Name)
		}
	}
	return failed
}

// Render formats the output fields of rec as raw values. Unset fields are
// omitted.
func (b *Binder[T]) Render(rec *T) (Values, error) {
	out := make(Values)
	var errs []error
	for _, f := range b.fields.Fields() {
		if !f.Direction.Writes() {
			continue
		}
		v, ok := f.Get(rec)
		if !ok {
			continue
		}

		items := []any{v}
		if f.Array {
			items, _ = v.([]any)
		}
		raw := make([]string, 0, len(items))
		for _, item := range items {
			s, err := b.coercer.Format(item, f.Descriptor)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
				continue
			}
			raw = append(raw, s)
		}
		out[b.Key(f.Name)] = raw
	}
	return out, errors.Join(errs...)
}
