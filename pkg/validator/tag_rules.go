package validator

import (
	"fmt"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	tagEngine     *playground.Validate
	tagEngineOnce sync.Once
)

func tags() *playground.Validate {
	tagEngineOnce.Do(func() {
		tagEngine = playground.New()
	})
	return tagEngine
}

// CheckTag reports whether tag is a usable go-playground/validator tag.
func CheckTag(tag string) (err error) {
	if tag == "" {
		return fmt.Errorf("empty validation tag")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid validation tag %q: %v", tag, r)
		}
	}()
	// Unknown tags panic on first use; the returned validation result is irrelevant.
	_ = tags().Var("", tag)
	return nil
}

// Tag validates a value against a go-playground/validator tag such as
// "hexcolor" or "e164". Callers should vet the tag with CheckTag first.
func Tag(field, tag string) Rule {
	return newRule(field, CodeTag,
		fmt.Sprintf("must satisfy %s", tag),
		map[string]any{"tag": tag},
		optional(func(v any) bool {
			var target any = v
			switch v.(type) {
			case string, int64, uint64, float64, bool:
			default:
				target = toText(v)
			}
			return tags().Var(target, tag) == nil
		}))
}
