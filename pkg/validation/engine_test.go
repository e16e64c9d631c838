package validation_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/constraint"
	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validation"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type person struct {
	Age int
}

func (person) DeclareFields(d *field.Declaration[person]) {
	d.Add(field.Int("age", func(p *person) *int { return &p.Age }))
}

type census struct {
	Age *int
}

func (census) DeclareFields(d *field.Declaration[census]) {
	d.Add(field.IntPtr("age", func(c *census) **int { return &c.Age }))
}

type signup struct {
	Name     string
	Email    string
	Age      int
	Password string
	Confirm  string
	Tags     []string
	Phone    string
	Receipt  string
}

func (signup) DeclareFields(d *field.Declaration[signup]) {
	d.Add(
		field.String("name", func(s *signup) *string { return &s.Name }),
		field.String("email", func(s *signup) *string { return &s.Email }),
		field.Int("age", func(s *signup) *int { return &s.Age }),
		field.String("password", func(s *signup) *string { return &s.Password }),
		field.String("confirm", func(s *signup) *string { return &s.Confirm }),
		field.Strings("tags", func(s *signup) *[]string { return &s.Tags }),
		field.String("phone", func(s *signup) *string { return &s.Phone }),
		field.String("receipt", func(s *signup) *string { return &s.Receipt }).WithDirection(field.Out),
	)
}

func newSignup(t *testing.T, rec *signup, opts ...validation.Option) *validation.Engine[signup] {
	t.Helper()
	e, err := validation.New(rec, opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_AgeExample(t *testing.T) {
	t.Parallel()

	var p person
	e, err := validation.New(&p)
	require.NoError(t, err)

	_, err = e.AddConstrainedPropertyRules(
		constraint.NewProperty("age", constraint.Required(), constraint.Range(0, 150)).InGroups("adult"),
	)
	require.NoError(t, err)

	ok := e.Populate(binder.Values{"age": {"abc"}})
	assert.False(t, ok)
	msgs, has := e.LoadingErrors("age")
	require.True(t, has)
	assert.Len(t, msgs, 1)
	assert.Zero(t, p.Age)

	ok = e.Populate(binder.Values{"age": {"200"}})
	assert.True(t, ok)
	assert.Equal(t, 200, p.Age)
	_, has = e.LoadingErrors("age")
	assert.False(t, has, "successful load clears the loading error")

	valid, err := e.ValidateGroup("adult")
	require.NoError(t, err)
	assert.False(t, valid)
	errs := e.GroupErrors("adult")
	require.Len(t, errs, 1)
	assert.Equal(t, validator.CodeRange, errs[0].Code)
	assert.Equal(t, "adult", errs[0].Group)

	e.Populate(binder.Values{"age": {"30"}})
	valid, err = e.ValidateGroup("adult")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, e.GroupErrors("adult"))
}

func TestEngine_RequiredZero(t *testing.T) {
	t.Parallel()

	adult := constraint.NewProperty("age", constraint.Required(), constraint.Range(0, 150)).InGroups("adult")

	t.Run("plain int treats zero as missing", func(t *testing.T) {
		t.Parallel()
		var p person
		e, err := validation.New(&p)
		require.NoError(t, err)
		_, err = e.AddConstrainedPropertyRules(adult)
		require.NoError(t, err)

		e.Populate(binder.Values{"age": {"0"}})
		ok, _ := e.ValidateGroup("adult")
		assert.False(t, ok)
		assert.Equal(t, []string{validator.CodeRequired}, e.GroupErrors("adult").Codes("age"))
	})

	t.Run("boxed int accepts an answered zero", func(t *testing.T) {
		t.Parallel()
		var c census
		e, err := validation.New(&c)
		require.NoError(t, err)
		_, err = e.AddConstrainedPropertyRules(adult)
		require.NoError(t, err)

		ok, _ := e.ValidateGroup("adult")
		assert.False(t, ok, "nil is unanswered")
		assert.Equal(t, []string{validator.CodeRequired}, e.GroupErrors("adult").Codes("age"))

		e.Populate(binder.Values{"age": {"0"}})
		require.NotNil(t, c.Age)
		ok, _ = e.ValidateGroup("adult")
		assert.True(t, ok)
	})
}

func TestEngine_New(t *testing.T) {
	t.Parallel()

	_, err := validation.New[signup](nil)
	assert.ErrorIs(t, err, validation.ErrNilRecord)

	_, err = validation.New(&badRecord{})
	assert.ErrorIs(t, err, field.ErrDiscovery)
}

type badRecord struct{ A, B string }

func (badRecord) DeclareFields(d *field.Declaration[badRecord]) {
	d.Add(
		field.String("a", func(r *badRecord) *string { return &r.A }),
		field.String("a", func(r *badRecord) *string { return &r.B }),
	)
}

func TestEngine_ConstrainedProperties(t *testing.T) {
	t.Parallel()

	t.Run("re-registration merges and recompiles", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})

		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("age", constraint.Required(), constraint.Range(0, 150)))
		require.NoError(t, err)
		rules, err := e.AddConstrainedPropertyRules(constraint.NewProperty("age", constraint.Range(18, 99)))
		require.NoError(t, err)

		require.Len(t, rules, 2, "a merged set, not a union of stale rule sets")
		assert.Equal(t, validator.CodeRequired, rules[0].Code)
		assert.Equal(t, validator.CodeRange, rules[1].Code)
		assert.Equal(t, float64(18), rules[1].Params["min"])
		assert.Len(t, e.Rules("age"), 2)

		p, ok := e.Property("age")
		require.True(t, ok)
		assert.Equal(t, []constraint.Kind{constraint.KindRequired, constraint.KindRange}, p.Constraints.Kinds())
	})

	t.Run("compilation failure leaves the field without rules", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Required()))
		require.NoError(t, err)

		_, err = e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Pattern("(")))
		require.ErrorIs(t, err, constraint.ErrCompilation)
		assert.Empty(t, e.Rules("name"))

		_, err = e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Pattern("^[A-Z]")))
		require.NoError(t, err)
		assert.Len(t, e.Rules("name"), 2)
	})

	t.Run("unknown kind keeps the stored declaration", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.MaxLength(10)))
		require.NoError(t, err)

		_, err = e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Constraint{Kind: "requird", Value: true}))
		require.ErrorIs(t, err, constraint.ErrCompilation)
		assert.Contains(t, err.Error(), "requird")
		assert.Empty(t, e.Rules("name"))

		p, ok := e.Property("name")
		require.True(t, ok)
		assert.Equal(t, []constraint.Kind{constraint.KindMaxLength}, p.Constraints.Kinds())

		rules, err := e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Required()))
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, validator.CodeRequired, rules[0].Code)
		assert.Equal(t, validator.CodeMaxLength, rules[1].Code)
	})

	t.Run("unknown kind on a new field stores nothing", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("email", constraint.Constraint{Kind: "requird"}))
		require.ErrorIs(t, err, constraint.ErrCompilation)
		_, ok := e.Property("email")
		assert.False(t, ok)

		rules, err := e.AddConstrainedPropertyRules(constraint.NewProperty("email", constraint.Required()))
		require.NoError(t, err)
		assert.Len(t, rules, 1)
	})

	t.Run("one bad property does not stop the others", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		err := e.AddConstrainedProperties(
			constraint.NewProperty("name", constraint.Required()),
			constraint.NewProperty("email", constraint.Constraint{Kind: "palindrome"}),
			constraint.NewProperty("nope", constraint.Required()),
			constraint.NewProperty("age", constraint.AtLeast(18)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, constraint.ErrCompilation)
		assert.Contains(t, err.Error(), "nope")
		assert.Len(t, e.Rules("name"), 1)
		assert.Empty(t, e.Rules("email"))
		assert.Len(t, e.Rules("age"), 1)
		_, ok := e.Property("nope")
		assert.False(t, ok)
	})

	t.Run("preview does not change state", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Required()))
		require.NoError(t, err)

		rules, err := e.GenerateConstrainedPropertyRules(
			constraint.NewProperty("name", constraint.MaxLength(5)).InGroups("preview"),
		)
		require.NoError(t, err)
		assert.Len(t, rules, 2)

		assert.Len(t, e.Rules("name"), 1)
		_, ok := e.GetGroup("preview")
		assert.False(t, ok)
		p, _ := e.Property("name")
		assert.False(t, p.Constraints.Has(constraint.KindMaxLength))

		_, err = e.GenerateConstrainedPropertyRules(constraint.NewProperty("missing"))
		assert.ErrorIs(t, err, constraint.ErrCompilation)
	})

	t.Run("declared groups are created on demand", func(t *testing.T) {
		t.Parallel()
		e := newSignup(t, &signup{})
		_, err := e.AddConstrainedPropertyRules(constraint.NewProperty("email", constraint.Email()).InGroups("contact", "step1"))
		require.NoError(t, err)

		g, ok := e.GetGroup("contact")
		require.True(t, ok)
		assert.Equal(t, []string{"email"}, g.Subjects())
		assert.Len(t, g.Rules(), 1)

		_, err = e.AddConstrainedPropertyRules(constraint.NewProperty("email", constraint.Required()))
		require.NoError(t, err)
		assert.Len(t, g.Rules(), 2, "groups see recompiled rules")
	})

	t.Run("declarations from yaml", func(t *testing.T) {
		t.Parallel()
		props, err := constraint.ParseYAML([]byte(`
properties:
  - name: email
    groups: [step1]
    constraints:
      required: true
      email: true
  - name: tags
    constraints:
      unique: true
      max_length: 3
`))
		require.NoError(t, err)

		e := newSignup(t, &signup{})
		require.NoError(t, e.AddConstrainedProperties(props...))
		e.Populate(binder.Values{"email": {"nope"}, "tags": {"a", "a"}})

		ok, err := e.ValidateGroup("step1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{validator.CodeEmail}, e.GroupErrors("step1").Codes("email"))
		assert.Equal(t, []string{validator.CodeUnique}, e.GroupErrors("step1").Codes("tags"))
	})
}

func TestEngine_LoadingErrors(t *testing.T) {
	t.Parallel()

	e := newSignup(t, &signup{Age: 7})
	require.NoError(t, e.AddConstrainedProperties(
		constraint.NewProperty("age", constraint.Required(), constraint.Range(18, 99)).InGroups("step1"),
	))

	e.Populate(binder.Values{"age": {"x"}})
	_, ok := e.LoadingErrors("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"age"}, e.LoadingErrorFields())

	valid, err := e.ValidateGroup("step1")
	require.NoError(t, err)
	assert.False(t, valid)
	errs := e.GroupErrors("step1")
	require.Len(t, errs, 1, "rules of a field that failed to load are skipped")
	assert.Equal(t, validator.CodeInvalid, errs[0].Code)
	assert.Equal(t, "parse_failure", errs[0].Params["reason"])

	e.ClearLoadingErrors("age")
	_, ok = e.LoadingErrors("age")
	assert.False(t, ok)
	valid, _ = e.ValidateGroup("step1")
	assert.False(t, valid)
	assert.Equal(t, []string{validator.CodeRange}, e.GroupErrors("step1").Codes("age"))

	e.Populate(binder.Values{"age": {"y"}})
	e.ClearLoadingErrors()
	assert.Empty(t, e.LoadingErrorFields())
}

func TestEngine_Render(t *testing.T) {
	t.Parallel()
	e := newSignup(t, &signup{Receipt: "R-1", Name: "in only"})
	out, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, binder.Values{"receipt": {"R-1"}}, out)
}

func TestEngine_BinderOptions(t *testing.T) {
	t.Parallel()
	var rec signup
	e := newSignup(t, &rec, validation.WithBinderOptions(binder.WithPrefix("signup_")))
	e.Populate(binder.Values{"name": {"plain"}, "signup_name": {"scoped"}})
	assert.Equal(t, "scoped", rec.Name)
	assert.Same(t, &rec, e.Record())
}

func TestEngine_Logging(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))

	e := newSignup(t, &signup{}, validation.WithLogger(log))
	e.Populate(binder.Values{"age": {"abc"}})
	_, _ = e.AddConstrainedPropertyRules(constraint.NewProperty("name", constraint.Tag("no_such_tag")))

	out := buf.String()
	assert.Contains(t, out, "field failed to load")
	assert.Contains(t, out, `"field":"age"`)
	assert.Contains(t, out, `"reason":"parse_failure"`)
	assert.Contains(t, out, "constraint compilation failed")
	assert.Contains(t, out, `"component":"validation"`)
}
