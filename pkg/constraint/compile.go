package constraint

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

type compiler func(field string, value any) (*validator.Rule, error)

var compilers = map[Kind]compiler{
	KindRequired:  toggle(validator.Required),
	KindEmail:     toggle(validator.Email),
	KindURL:       compileURL,
	KindPattern:   compilePattern,
	KindTag:       compileTag,
	KindMinLength: compileLength(validator.MinLength),
	KindMaxLength: compileLength(validator.MaxLength),
	KindRange:     compileRange,
	KindMinDate:   compileDate(validator.MinDate),
	KindMaxDate:   compileDate(validator.MaxDate),
	KindInList:    compileInList,
	KindNotEqual:  compileNotEqual,
	KindSameAs:    compileSameAs,
	KindUnique:    toggle(validator.Unique),
	KindCustom:    compileCustom,
}

// Compile turns a property into executable rules, one per constraint kind
// in compilation order. Any failure returns an error wrapping ErrCompilation
// and no rules.
func Compile(p Property) ([]validator.Rule, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: property without a field name", ErrCompilation)
	}

	var errs []error
	for _, c := range p.Constraints {
		if !c.Kind.Known() {
			errs = append(errs, fmt.Errorf("%w: %s: unknown constraint kind %q", ErrCompilation, p.Name, c.Kind))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var rules []validator.Rule
	for _, kind := range order {
		c, ok := p.Constraints.Get(kind)
		if !ok {
			continue
		}
		rule, err := compilers[kind](p.Name, c.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %s: %v", ErrCompilation, p.Name, kind, err))
			continue
		}
		if rule != nil {
			rules = append(rules, *rule)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rules, nil
}

// enabled reads a boolean switch; a nil value counts as on.
func enabled(v any) (bool, error) {
	if v == nil {
		return true, nil
	}
	return cast.ToBoolE(v)
}

func toggle(build func(field string) validator.Rule) compiler {
	return func(field string, v any) (*validator.Rule, error) {
		on, err := enabled(v)
		if err != nil || !on {
			return nil, err
		}
		r := build(field)
		return &r, nil
	}
}

func compileURL(field string, v any) (*validator.Rule, error) {
	var schemes []string
	switch x := v.(type) {
	case nil:
	case bool:
		if !x {
			return nil, nil
		}
	case string:
		schemes = []string{x}
	default:
		s, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil, err
		}
		schemes = s
	}
	r := validator.URL(field, schemes...)
	return &r, nil
}

func compilePattern(field string, v any) (*validator.Rule, error) {
	expr, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	if expr == "" {
		return nil, errors.New("empty pattern")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	r := validator.Pattern(field, re)
	return &r, nil
}

func compileTag(field string, v any) (*validator.Rule, error) {
	tag, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	if err := validator.CheckTag(tag); err != nil {
		return nil, err
	}
	r := validator.Tag(field, tag)
	return &r, nil
}

func compileLength(build func(string, int) validator.Rule) compiler {
	return func(field string, v any) (*validator.Rule, error) {
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative length %d", n)
		}
		r := build(field, n)
		return &r, nil
	}
}

// compileRange accepts {min, max} maps with either key, or a two element
// [min, max] list.
func compileRange(field string, v any) (*validator.Rule, error) {
	var min, max *float64

	bound := func(x any) (*float64, error) {
		if x == nil {
			return nil, nil
		}
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}

	if list, ok := v.([]any); ok {
		if len(list) != 2 {
			return nil, fmt.Errorf("range list needs 2 bounds, got %d", len(list))
		}
		var err error
		if min, err = bound(list[0]); err != nil {
			return nil, err
		}
		if max, err = bound(list[1]); err != nil {
			return nil, err
		}
	} else {
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return nil, err
		}
		for key, x := range m {
			var err error
			switch key {
			case "min":
				min, err = bound(x)
			case "max":
				max, err = bound(x)
			default:
				err = fmt.Errorf("unknown range key %q", key)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if min == nil && max == nil {
		return nil, errors.New("range without bounds")
	}
	if min != nil && max != nil && *min > *max {
		return nil, fmt.Errorf("range min %v exceeds max %v", *min, *max)
	}
	r := validator.Range(field, min, max)
	return &r, nil
}

func compileDate(build func(string, time.Time) validator.Rule) compiler {
	return func(field string, v any) (*validator.Rule, error) {
		t, err := cast.ToTimeE(v)
		if err != nil {
			return nil, err
		}
		r := build(field, t)
		return &r, nil
	}
}

func compileInList(field string, v any) (*validator.Rule, error) {
	values, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errors.New("empty list")
	}
	r := validator.InList(field, values)
	return &r, nil
}

func compileNotEqual(field string, v any) (*validator.Rule, error) {
	if v == nil {
		return nil, errors.New("missing value")
	}
	r := validator.NotEqual(field, v)
	return &r, nil
}

func compileSameAs(field string, v any) (*validator.Rule, error) {
	other, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	if other == "" || other == field {
		return nil, fmt.Errorf("invalid reference field %q", other)
	}
	r := validator.SameAs(field, other)
	return &r, nil
}

func compileCustom(field string, v any) (*validator.Rule, error) {
	c, ok := v.(Check)
	if !ok || c.Func == nil {
		return nil, fmt.Errorf("custom constraint needs a Check, got %T", v)
	}
	code := c.Code
	if code == "" {
		code = validator.CodeInvalid
	}
	r := validator.Custom(field, code, c.Func)
	return &r, nil
}
