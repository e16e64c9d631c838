package binder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/binder"
)

func TestTracker(t *testing.T) {
	t.Parallel()

	var tr binder.Tracker
	_, ok := tr.Messages("age")
	assert.False(t, ok)
	tr.Clear("age")

	tr.Record(binder.LoadingError{Field: "age", Values: []string{"x"}, Reason: binder.ReasonParse, Err: errors.New("bad")})
	tr.Record(binder.LoadingError{Field: "tags", Values: []string{"1", "2"}, Reason: binder.ReasonParse, Err: errors.New("bad")})
	tr.Record(binder.LoadingError{Field: "age", Values: []string{"y"}, Reason: binder.ReasonParse, Err: errors.New("worse")})

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []string{"age", "tags"}, tr.Fields())
	msgs, ok := tr.Messages("age")
	assert.True(t, ok)
	assert.Equal(t, []string{`invalid value "y"`}, msgs)
	msgs, _ = tr.Messages("tags")
	assert.Equal(t, []string{`invalid values ["1" "2"]`}, msgs)

	errs := tr.Errors()
	assert.Len(t, errs, 2)
	assert.Equal(t, "age: parse_failure: worse", errs[0].Error())

	tr.Clear("age")
	assert.Equal(t, []string{"tags"}, tr.Fields())
	tr.ClearAll()
	assert.Zero(t, tr.Len())
}
