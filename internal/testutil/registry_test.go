// Package testutil provides testing utilities for the cacheext policy.
// This file contains tests for the failure-injecting registry wrapper.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheext "github.com/bennyrubin/cache-ext"
	"github.com/bennyrubin/cache-ext/registry"
)

// TestFlakyRegistry_PassThrough verifies unscripted calls reach the inner
// registry and are counted.
func TestFlakyRegistry_PassThrough(t *testing.T) {
	flaky := WrapRegistry(registry.NewMemory())

	id, err := flaky.NewList("grp")
	require.NoError(t, err)
	require.True(t, id.Valid())

	page := NewPage(1)
	require.NoError(t, flaky.Append(id, page))
	assert.True(t, flaky.Remove(page))
	assert.False(t, flaky.Remove(page))

	assert.Equal(t, 1, flaky.NewListCalls)
	assert.Equal(t, 1, flaky.AppendCalls)
	assert.Equal(t, 2, flaky.RemoveCalls)
	assert.Equal(t, []cacheext.ListID{id}, flaky.Created)
}

// TestFlakyRegistry_NewListScript verifies failure scripts are consumed
// in call order and exhausted scripts let calls through again.
func TestFlakyRegistry_NewListScript(t *testing.T) {
	flaky := WrapRegistry(registry.NewMemory())
	flaky.NewListErrs = []error{nil, ErrScripted}

	first, err := flaky.NewList("grp")
	require.NoError(t, err)

	_, err = flaky.NewList("grp")
	require.ErrorIs(t, err, ErrScripted)

	second, err := flaky.NewList("grp")
	require.NoError(t, err)

	assert.Equal(t, 3, flaky.NewListCalls)
	assert.Equal(t, []cacheext.ListID{first, second}, flaky.Created)
	assert.Equal(t, first, flaky.Cold())
	assert.Equal(t, second, flaky.Hot())
}

// TestFlakyRegistry_AppendAndIterateScripts verifies scripted append and
// iterate failures never reach the inner registry.
func TestFlakyRegistry_AppendAndIterateScripts(t *testing.T) {
	inner := registry.NewMemory()
	flaky := WrapRegistry(inner)
	flaky.AppendErrs = []error{ErrScripted}
	flaky.IterateErrs = []error{ErrScripted}

	id, err := flaky.NewList("grp")
	require.NoError(t, err)

	page := NewPage(1)
	require.ErrorIs(t, flaky.Append(id, page), ErrScripted)
	assert.Equal(t, 0, inner.Len(id), "scripted append must not reach the inner registry")

	err = flaky.Iterate("grp", id, func(int, cacheext.Page) cacheext.IterVerdict {
		t.Fatal("scripted iterate must not invoke the callback")
		return cacheext.IterStop
	})
	require.ErrorIs(t, err, ErrScripted)

	// Scripts consumed; the next calls pass through.
	require.NoError(t, flaky.Append(id, page))
	seen := 0
	require.NoError(t, flaky.Iterate("grp", id, func(int, cacheext.Page) cacheext.IterVerdict {
		seen++
		return cacheext.IterContinue
	}))
	assert.Equal(t, 1, seen)
}
