package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMetadata(t *testing.T) {
	t.Parallel()

	base := NewStd("union degenerate")
	err := New(base).
		Component("footprint").
		Category(CategoryFootprint).
		Context("entity_id", int64(42)).
		Context("triangles", 7).
		Build()

	require.Error(t, err)
	assert.Equal(t, "union degenerate", err.Error())
	assert.True(t, Is(err, base))
	assert.True(t, IsCategory(err, CategoryFootprint))
	assert.False(t, IsCategory(err, CategoryPlacement))
	assert.Equal(t, CategoryFootprint, CategoryOf(err))

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, "footprint", ee.Component)
	assert.Equal(t, int64(42), ee.Context["entity_id"])
}

func TestWrappedChainPassthrough(t *testing.T) {
	t.Parallel()

	err := New(fs.ErrNotExist).
		Component("model").
		Category(CategoryFileIO).
		Build()

	assert.True(t, Is(err, fs.ErrNotExist))
	assert.Equal(t, fs.ErrNotExist, Unwrap(err))
}

func TestLogAttrsStableOrder(t *testing.T) {
	t.Parallel()

	err := Newf("bad coefficient %q", "classroom").
		Component("conf").
		Category(CategoryRuleConfig).
		Context("rule", "area-per-capita").
		Context("label", "classroom").
		Build()

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	attrs := ee.LogAttrs()
	// component/category first, then context keys sorted.
	assert.Equal(t, []any{
		"component", "conf",
		"category", "rule-config",
		"label", "classroom",
		"rule", "area-per-capita",
	}, attrs)
}

func TestFields(t *testing.T) {
	t.Parallel()

	err := Newf("no length unit").Component("units").Category(CategoryUnitScaling).
		Context("fallback", 1.0).Build()
	assert.Equal(t, "fallback=1", Fields(err))
	assert.Empty(t, Fields(NewStd("plain")))
}
