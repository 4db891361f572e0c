package briar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLookupCurrentScope(t *testing.T) {
	e := NewEnv(nil)
	e.Assign("x", NewInt(1))
	v, err := e.Lookup("x", nil)
	require.NoError(t, err)
	assert.Equal(t, NewInt(1), v)
}

func TestEnvLookupWalksParentChain(t *testing.T) {
	parent := NewEnv(nil)
	parent.Assign("x", NewInt(1))
	child := NewEnv(parent)
	v, err := child.Lookup("x", nil)
	require.NoError(t, err)
	assert.Equal(t, NewInt(1), v)
}

func TestEnvLookupUnboundNameFails(t *testing.T) {
	e := NewEnv(nil)
	_, err := e.Lookup("missing", nil)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindName, kind)
}

func TestEnvAssignDoesNotSearchParents(t *testing.T) {
	parent := NewEnv(nil)
	parent.Assign("x", NewInt(1))
	child := NewEnv(parent)
	child.Assign("x", NewInt(2))

	childVal, err := child.Lookup("x", nil)
	require.NoError(t, err)
	assert.Equal(t, NewInt(2), childVal)

	parentVal, err := parent.Lookup("x", nil)
	require.NoError(t, err)
	assert.Equal(t, NewInt(1), parentVal)
}
