package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/constraint"
	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type options struct {
	log        *slog.Logger
	binderOpts []binder.Option
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger. Loading errors are logged at debug level and
// compilation failures at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithBinderOptions passes options to the engine's binder.
func WithBinderOptions(opts ...binder.Option) Option {
	return func(o *options) { o.binderOpts = append(o.binderOpts, opts...) }
}

// Engine populates and validates one record. It is not safe for concurrent
// use; create one engine per record.
type Engine[T any] struct {
	rec     *T
	fields  *field.Set[T]
	binder  *binder.Binder[T]
	tracker binder.Tracker
	log     *slog.Logger

	properties map[string]constraint.Property
	propOrder  []string
	compiled   map[string][]validator.Rule
	ungrouped  []validator.Rule

	groups     map[string]*Group
	groupOrder []*Group
	focused    *Group

	errs      validator.ValidationErrors
	validated []string
}

// New returns an engine over rec using the declared fields of T.
func New[T field.Declarer[T]](rec *T, opts ...Option) (*Engine[T], error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	o := options{log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := binder.New[T](o.binderOpts...)
	if err != nil {
		return nil, err
	}

	return &Engine[T]{
		rec:        rec,
		fields:     b.Fields(),
		binder:     b,
		log:        o.log.With(logger.Component("validation"), logger.Record(b.Fields().TypeName())),
		properties: make(map[string]constraint.Property),
		compiled:   make(map[string][]validator.Rule),
		groups:     make(map[string]*Group),
	}, nil
}

// Record returns the record the engine works on.
func (e *Engine[T]) Record() *T { return e.rec }

// Fields returns the record's field set.
func (e *Engine[T]) Fields() *field.Set[T] { return e.fields }

// Populate binds values into the record. It reports whether every field in
// values loaded; failures are kept and queryable through LoadingErrors.
func (e *Engine[T]) Populate(values binder.Values) bool {
	failed := e.binder.Populate(e.rec, values, &e.tracker)
	for _, le := range failed {
		e.log.Debug("field failed to load",
			logger.Field(le.Field),
			logger.Reason(string(le.Reason)),
			logger.Error(le.Err),
		)
	}
	return len(failed) == 0
}

// LoadingErrors returns the latest loading error text of field. It reports
// false when the field has no error or does not exist on the record.
func (e *Engine[T]) LoadingErrors(field string) ([]string, bool) {
	if !e.fields.Has(field) {
		return nil, false
	}
	return e.tracker.Messages(field)
}

// LoadingErrorFields returns the fields that currently have loading errors.
func (e *Engine[T]) LoadingErrorFields() []string {
	return e.tracker.Fields()
}

// ClearLoadingErrors drops the loading errors of the given fields, or of
// every field when none are given.
func (e *Engine[T]) ClearLoadingErrors(fields ...string) {
	if len(fields) == 0 {
		e.tracker.ClearAll()
		return
	}
	for _, f := range fields {
		e.tracker.Clear(f)
	}
}

// Render returns the raw values of the record's output fields.
func (e *Engine[T]) Render() (binder.Values, error) {
	return e.binder.Render(e.rec)
}

// AddConstrainedPropertyRules merges p over the stored declaration of the
// same field, recompiles the field's rules and registers the field with the
// declaration's groups, creating missing ones. Previously compiled rules of
// the field are discarded. On failure the field is left with no rules. A
// declaration with an unknown constraint kind is not merged, so the stored
// declaration stays as it was and a corrected one can still compile.
func (e *Engine[T]) AddConstrainedPropertyRules(p constraint.Property) ([]validator.Rule, error) {
	if !e.fields.Has(p.Name) {
		err := fmt.Errorf("%w: %s has no field %q", constraint.ErrCompilation, e.fields.TypeName(), p.Name)
		e.log.Warn("constraint compilation failed", logger.Field(p.Name), logger.Error(err))
		return nil, err
	}
	if err := unknownKinds(p); err != nil {
		delete(e.compiled, p.Name)
		e.log.Warn("constraint compilation failed", logger.Field(p.Name), logger.Error(err))
		return nil, err
	}

	merged := e.merged(p)
	if _, ok := e.properties[p.Name]; !ok {
		e.propOrder = append(e.propOrder, p.Name)
	}
	e.properties[p.Name] = merged
	delete(e.compiled, p.Name)

	for _, name := range merged.Groups {
		g, ok := e.groups[name]
		if !ok {
			var err error
			if g, err = e.newGroup(name, nil); err != nil {
				return nil, err
			}
		}
		g.AddSubject(p.Name)
	}

	rules, err := e.compile(merged)
	if err != nil {
		e.log.Warn("constraint compilation failed", logger.Field(p.Name), logger.Error(err))
		return nil, err
	}
	e.compiled[p.Name] = rules
	return slices.Clone(rules), nil
}

func unknownKinds(p constraint.Property) error {
	var errs []error
	for _, c := range p.Constraints {
		if !c.Kind.Known() {
			errs = append(errs, fmt.Errorf("%w: %s: unknown constraint kind %q", constraint.ErrCompilation, p.Name, c.Kind))
		}
	}
	return errors.Join(errs...)
}

// AddConstrainedProperties registers every property. A failing property
// does not stop the others; failures are joined.
func (e *Engine[T]) AddConstrainedProperties(props ...constraint.Property) error {
	var errs []error
	for _, p := range props {
		if _, err := e.AddConstrainedPropertyRules(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GenerateConstrainedPropertyRules returns the rules p would compile to
// after merging over the stored declaration, without changing any state.
func (e *Engine[T]) GenerateConstrainedPropertyRules(p constraint.Property) ([]validator.Rule, error) {
	if !e.fields.Has(p.Name) {
		return nil, fmt.Errorf("%w: %s has no field %q", constraint.ErrCompilation, e.fields.TypeName(), p.Name)
	}
	return e.compile(e.merged(p))
}

// compile compiles p and checks boxed fields for presence instead of a
// non-zero value, so an answered zero satisfies required.
func (e *Engine[T]) compile(p constraint.Property) ([]validator.Rule, error) {
	rules, err := constraint.Compile(p)
	if err != nil {
		return nil, err
	}
	if f, ok := e.fields.Lookup(p.Name); ok && f.Boxed {
		for i, r := range rules {
			if r.Code == validator.CodeRequired {
				rules[i] = validator.Present(p.Name)
			}
		}
	}
	return rules, nil
}

func (e *Engine[T]) merged(p constraint.Property) constraint.Property {
	prev, ok := e.properties[p.Name]
	if !ok {
		prev = constraint.Property{Name: p.Name}
	}
	return constraint.Merge(prev, p)
}

// Property returns the stored, merged declaration of field.
func (e *Engine[T]) Property(field string) (constraint.Property, bool) {
	p, ok := e.properties[field]
	return p, ok
}

// Rules returns the compiled rules of field.
func (e *Engine[T]) Rules(field string) []validator.Rule {
	return slices.Clone(e.compiled[field])
}

// AddRule registers a rule with the named groups, or with the ungrounded set
// when no group is given. Unknown groups fail the whole call.
func (e *Engine[T]) AddRule(rule validator.Rule, groups ...string) error {
	if len(groups) == 0 {
		e.ungrouped = append(e.ungrouped, rule)
		return nil
	}
	targets := make([]*Group, 0, len(groups))
	for _, name := range groups {
		g, ok := e.groups[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, name)
		}
		targets = append(targets, g)
	}
	for _, g := range targets {
		g.AddRule(rule)
	}
	return nil
}

// AddGroup creates an empty top-level group.
func (e *Engine[T]) AddGroup(name string) (*Group, error) {
	return e.newGroup(name, nil)
}

func (e *Engine[T]) newGroup(name string, parent *Group) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidGroupName)
	}
	if _, ok := e.groups[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateGroup, name)
	}
	g := &Group{name: name, parent: parent, reg: e}
	if parent != nil {
		parent.children = append(parent.children, g)
	}
	e.groups[name] = g
	e.groupOrder = append(e.groupOrder, g)
	return g, nil
}

func (e *Engine[T]) fieldRules(field string) []validator.Rule {
	return e.compiled[field]
}

// GetGroups returns every group, sub-groups included, in creation order.
func (e *Engine[T]) GetGroups() []*Group {
	return slices.Clone(e.groupOrder)
}

// GetGroup returns the named group. Unknown names report false.
func (e *Engine[T]) GetGroup(name string) (*Group, bool) {
	g, ok := e.groups[name]
	return g, ok
}

// FocusGroup makes the named group's errors, plus ungrounded ones, the
// engine's visible errors. The previously focused group is unfocused.
// Other groups keep their errors.
//
// Ungrounded means tagged with no group: entries from Validate or AddError.
// ValidateGroup tags failures of ungrounded rules with the group it ran, so
// those stay hidden while another group is focused until that group is
// validated too.
func (e *Engine[T]) FocusGroup(name string) error {
	g, ok := e.groups[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	e.Unfocus()
	g.focused = true
	e.focused = g
	return nil
}

// Unfocus makes every error visible again.
func (e *Engine[T]) Unfocus() {
	if e.focused != nil {
		e.focused.focused = false
		e.focused = nil
	}
}

// FocusedGroup returns the focused group, if any.
func (e *Engine[T]) FocusedGroup() (*Group, bool) {
	return e.focused, e.focused != nil
}

// ResetGroup removes the error entries of the named group.
func (e *Engine[T]) ResetGroup(name string) error {
	if _, ok := e.groups[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	e.dropTagged(name)
	return nil
}

// ValidateGroup runs the group's rules and every ungrounded rule against the
// record. Earlier entries of the group are replaced. It reports whether no
// rule failed.
func (e *Engine[T]) ValidateGroup(name string) (bool, error) {
	return e.ValidateGroupWithContext(name, nil)
}

// ValidateGroupWithContext works like ValidateGroup and then lets ctx append
// whole-record errors, which are tagged with the group as well.
func (e *Engine[T]) ValidateGroupWithContext(name string, ctx Context[T]) (bool, error) {
	g, ok := e.groups[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	e.dropTagged(name)

	subjects := g.Subjects()
	for _, f := range e.ungroundedFields() {
		if !slices.Contains(subjects, f) {
			subjects = append(subjects, f)
		}
	}
	extra := append(slices.Clone(g.rules), e.ungrouped...)

	failures := e.run(name, subjects, extra)
	if ctx != nil {
		sink := &groupSink{group: name}
		ctx.Validate(e.rec, sink)
		failures = append(failures, sink.entries...)
	}
	e.errs = append(e.errs, failures...)
	e.log.Debug("group validated",
		logger.ValidationGroup(name),
		logger.Count(len(failures)),
		logger.Fields(failures.Fields()...),
	)
	return len(failures) == 0, nil
}

// Validate re-runs every rule: the ungrounded set tagged with no group and
// each group tagged with its own name. It reports whether nothing failed.
func (e *Engine[T]) Validate() bool {
	e.dropTagged("")
	failures := e.run("", e.ungroundedFields(), e.ungrouped)
	for _, g := range e.groupOrder {
		e.dropTagged(g.name)
		failures = append(failures, e.run(g.name, g.subjects, g.rules)...)
	}
	e.errs = append(e.errs, failures...)
	return len(failures) == 0
}

// ungroundedFields lists declared fields whose rules belong to no group,
// neither through their declaration nor through Group.AddSubject.
func (e *Engine[T]) ungroundedFields() []string {
	var out []string
	for _, name := range e.propOrder {
		if len(e.properties[name].Groups) == 0 && !e.grouped(name) {
			out = append(out, name)
		}
	}
	return out
}

func (e *Engine[T]) grouped(field string) bool {
	for _, g := range e.groupOrder {
		if g.HasSubject(field) {
			return true
		}
	}
	return false
}

// run evaluates the rules of subjects, then extra, tagging failures with
// group. A field with a loading error yields one invalid entry and its rules
// are skipped.
func (e *Engine[T]) run(group string, subjects []string, extra []validator.Rule) validator.ValidationErrors {
	var failures validator.ValidationErrors
	reported := make(map[string]bool)

	invalid := func(field string) bool {
		le, ok := e.tracker.Get(field)
		if !ok {
			return false
		}
		if !reported[field] {
			reported[field] = true
			failures = append(failures, validator.ValidationError{
				Field:   field,
				Code:    validator.CodeInvalid,
				Message: le.Message(),
				Params:  map[string]any{"field": field, "reason": string(le.Reason), "values": le.Values},
				Group:   group,
			})
		}
		return true
	}

	check := func(r validator.Rule) {
		e.markValidated(r.Field)
		if invalid(r.Field) {
			return
		}
		if failure, ok := r.Validate(e.lookup); !ok {
			failure.Group = group
			failures = append(failures, failure)
		}
	}

	for _, f := range subjects {
		e.markValidated(f)
		if invalid(f) {
			continue
		}
		for _, r := range e.compiled[f] {
			check(r)
		}
	}
	for _, r := range extra {
		check(r)
	}
	return failures
}

func (e *Engine[T]) lookup(name string) (any, bool) {
	f, ok := e.fields.Lookup(name)
	if !ok {
		return nil, false
	}
	return f.Get(e.rec)
}

func (e *Engine[T]) markValidated(field string) {
	if !slices.Contains(e.validated, field) {
		e.validated = append(e.validated, field)
	}
}

func (e *Engine[T]) dropTagged(group string) {
	e.errs = slices.DeleteFunc(e.errs, func(ve validator.ValidationError) bool {
		return ve.Group == group
	})
}

// Errors returns the visible errors: the focused group's and the ungrounded
// ones when a group is focused, every error otherwise.
func (e *Engine[T]) Errors() validator.ValidationErrors {
	if e.focused == nil {
		return e.AllErrors()
	}
	var out validator.ValidationErrors
	for _, ve := range e.errs {
		if ve.Group == "" || ve.Group == e.focused.name {
			out = append(out, ve)
		}
	}
	return out
}

// AllErrors returns every error entry regardless of focus.
func (e *Engine[T]) AllErrors() validator.ValidationErrors {
	return slices.Clone(e.errs)
}

// GroupErrors returns the entries tagged with the named group; "" selects
// the ungrounded ones.
func (e *Engine[T]) GroupErrors(name string) validator.ValidationErrors {
	return e.errs.InGroup(name)
}

// Err returns the visible errors as an error, or nil.
func (e *Engine[T]) Err() error {
	if errs := e.Errors(); len(errs) > 0 {
		return errs
	}
	return nil
}

// AddError appends an entry as is, for failures detected outside the engine.
func (e *Engine[T]) AddError(entry validator.ValidationError) {
	e.errs = append(e.errs, entry)
}

// ResetValidation drops every error entry and forgets validated subjects.
func (e *Engine[T]) ResetValidation() {
	e.errs = nil
	e.validated = nil
}

// ValidatedSubjects returns the fields checked since the last reset.
func (e *Engine[T]) ValidatedSubjects() []string {
	return slices.Clone(e.validated)
}

// IsSubjectValid reports whether field was checked and has no visible error.
func (e *Engine[T]) IsSubjectValid(field string) bool {
	return slices.Contains(e.validated, field) && !e.Errors().Has(field)
}
