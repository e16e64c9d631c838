package binder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/formkit/pkg/field"
)

// parser converts one raw string into the normalized value of a kind.
type parser func(c *Coercer, s string, d field.Descriptor) (any, error)

var parsers = map[field.Kind]parser{
	field.KindString: parseString,
	field.KindInt:    parseInt,
	field.KindUint:   parseUint,
	field.KindFloat:  parseFloat,
	field.KindBool:   parseBool,
	field.KindChar:   parseChar,
	field.KindDate:   parseDate,
	field.KindEnum:   parseEnum,
	field.KindUUID:   parseUUID,
	field.KindBytes:  parseBytes,
	field.KindChars:  parseChars,
	field.KindNested: parseNested,
}

// Coercer converts raw string sequences into normalized field values.
type Coercer struct {
	cfg   Config
	codec Codec
}

// NewCoercer returns a coercer. An empty date layout falls back to
// DefaultDateLayout and a nil codec to Base64JSON.
func NewCoercer(cfg Config, codec Codec) *Coercer {
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if codec == nil {
		codec = Base64JSON{}
	}
	return &Coercer{cfg: cfg, codec: codec}
}

// Coerce converts raw into a value for the field described by d.
// It reports false with no error when raw is empty, meaning the field must be
// left untouched. Scalars use the first raw value only. Arrays coerce every
// value and fail as a whole on the first bad element.
func (c *Coercer) Coerce(raw []string, d field.Descriptor) (any, bool, *LoadingError) {
	if len(raw) == 0 {
		return nil, false, nil
	}

	fail := func(reason Reason, err error) (any, bool, *LoadingError) {
		return nil, false, &LoadingError{Field: d.Name, Values: raw, Reason: reason, Err: err}
	}

	if !d.Array {
		v, err := c.element(raw[0], d)
		if err != nil {
			return fail(reasonOf(d), err)
		}
		return v, true, nil
	}

	if c.cfg.MaxValues > 0 && len(raw) > c.cfg.MaxValues {
		return fail(ReasonTooMany, fmt.Errorf("%w: %d exceeds %d", ErrTooManyValues, len(raw), c.cfg.MaxValues))
	}
	items := make([]any, 0, len(raw))
	for i, s := range raw {
		v, err := c.element(s, d)
		if err != nil {
			return fail(reasonOf(d), fmt.Errorf("element %d: %w", i, err))
		}
		items = append(items, v)
	}
	return items, true, nil
}

func reasonOf(d field.Descriptor) Reason {
	if d.Kind == field.KindNested {
		return ReasonDecode
	}
	return ReasonParse
}

func (c *Coercer) element(s string, d field.Descriptor) (any, error) {
	p, ok := parsers[d.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported kind %s", d.Kind)
	}
	if d.Kind != field.KindString && d.Kind != field.KindBytes && strings.TrimSpace(s) == "" {
		if d.Boxed {
			return nil, nil
		}
		return c.zero(d)
	}
	return p(c, s, d)
}

func (c *Coercer) zero(d field.Descriptor) (any, error) {
	switch d.Kind {
	case field.KindInt:
		return int64(0), nil
	case field.KindUint:
		return uint64(0), nil
	case field.KindFloat:
		return float64(0), nil
	case field.KindBool:
		return false, nil
	case field.KindChar:
		return rune(0), nil
	case field.KindDate:
		return time.Time{}, nil
	case field.KindEnum:
		return "", nil
	case field.KindUUID:
		return uuid.Nil, nil
	case field.KindChars:
		return []rune{}, nil
	case field.KindNested:
		return d.DecodeNested(func(any) error { return nil })
	}
	return nil, fmt.Errorf("unsupported kind %s", d.Kind)
}

// text applies the configured normalization to free text.
func (c *Coercer) text(s string) string {
	if c.cfg.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if c.cfg.NormalizeUnicode {
		s = norm.NFC.String(s)
	}
	return s
}

func parseString(c *Coercer, s string, _ field.Descriptor) (any, error) {
	return c.text(s), nil
}

func parseInt(_ *Coercer, s string, d field.Descriptor) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, d.Bits)
	if err != nil {
		return nil, fmt.Errorf("invalid int value %q: %w", s, err)
	}
	return n, nil
}

func parseUint(_ *Coercer, s string, d field.Descriptor) (any, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, d.Bits)
	if err != nil {
		return nil, fmt.Errorf("invalid uint value %q: %w", s, err)
	}
	return n, nil
}

func parseFloat(_ *Coercer, s string, d field.Descriptor) (any, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), d.Bits)
	if err != nil {
		return nil, fmt.Errorf("invalid float value %q: %w", s, err)
	}
	return n, nil
}

func parseBool(_ *Coercer, s string, _ field.Descriptor) (any, error) {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	// Be lenient with boolean values sent by HTML forms
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return nil, fmt.Errorf("%w %q", ErrInvalidBool, s)
}

func parseChar(c *Coercer, s string, _ field.Descriptor) (any, error) {
	s = c.text(s)
	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChar, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func parseDate(c *Coercer, s string, d field.Descriptor) (any, error) {
	layout := d.Format
	if layout == "" {
		layout = c.cfg.DateLayout
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q for layout %q: %w", s, layout, err)
	}
	return t, nil
}

func parseEnum(_ *Coercer, s string, d field.Descriptor) (any, error) {
	s = strings.TrimSpace(s)
	if !d.AcceptsEnum(s) {
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknownEnum, s, d.Enum)
	}
	return s, nil
}

func parseUUID(_ *Coercer, s string, _ field.Descriptor) (any, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return id, nil
}

func parseBytes(_ *Coercer, s string, _ field.Descriptor) (any, error) {
	return []byte(s), nil
}

func parseChars(c *Coercer, s string, _ field.Descriptor) (any, error) {
	return []rune(c.text(s)), nil
}

func parseNested(c *Coercer, s string, d field.Descriptor) (any, error) {
	return d.DecodeNested(func(dst any) error {
		return c.codec.Decode(s, dst)
	})
}

// Format renders a normalized value back to its raw string form.
func (c *Coercer) Format(v any, d field.Descriptor) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		bits := d.Bits
		if bits != 32 {
			bits = 64
		}
		return strconv.FormatFloat(x, 'g', -1, bits), nil
	case bool:
		return strconv.FormatBool(x), nil
	case rune:
		return string(x), nil
	case time.Time:
		layout := d.Format
		if layout == "" {
			layout = c.cfg.DateLayout
		}
		return x.Format(layout), nil
	case uuid.UUID:
		return x.String(), nil
	case []byte:
		return string(x), nil
	case []rune:
		return string(x), nil
	}
	if d.Kind == field.KindNested {
		return c.codec.Encode(v)
	}
	return fmt.Sprint(v), nil
}
