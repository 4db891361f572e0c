package briar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueDisplayForms(t *testing.T) {
	assert.Equal(t, "nil", NewNull().String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "false", NewBool(false).String())
	assert.Equal(t, "42", NewInt(42).String())
	assert.Equal(t, "-7", NewInt(-7).String())
	assert.Equal(t, "hi", NewStr("hi").String())
}

func TestValueListDisplayFiltersNonePlaceholder(t *testing.T) {
	l := NewEmptyList()
	assert.Equal(t, "", l.String())

	l2 := NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})
	assert.Equal(t, "1, 2, 3", l2.String())
}

func TestValueEquality(t *testing.T) {
	assert.True(t, valuesEqual(NewNull(), NewNull()))
	assert.True(t, valuesEqual(NewInt(3), NewInt(3)))
	assert.False(t, valuesEqual(NewInt(3), NewInt(4)))
	assert.True(t, valuesEqual(NewStr("a"), NewStr("a")))
	assert.True(t, valuesEqual(NewList([]Value{NewInt(1)}), NewList([]Value{NewInt(1)})))
	assert.False(t, valuesEqual(NewList([]Value{NewInt(1)}), NewList([]Value{NewInt(1), NewInt(2)})))
	assert.False(t, valuesEqual(NewInt(1), NewStr("1")))
}

func TestValueFunEqualityIsAlwaysFalse(t *testing.T) {
	f := &ValueFun{Name: "f"}
	assert.False(t, valuesEqual(f, f))
}

func TestAsIntTypeError(t *testing.T) {
	_, err := asInt(NewStr("x"), nil)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindType, kind)
}

func TestNonNullCount(t *testing.T) {
	l := NewEmptyList()
	assert.Equal(t, 0, l.nonNullCount())

	l2 := NewList([]Value{NewInt(1), NewNull(), NewInt(2)})
	assert.Equal(t, 2, l2.nonNullCount())
}

