package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walletgraph/walletgraph/internal/graph"
)

func TestIndex_Admit(t *testing.T) {
	ix := graph.NewIndex()

	idxA, created := ix.Admit("a")
	assert.Equal(t, 0, idxA)
	assert.True(t, created)

	idxB, created := ix.Admit("b")
	assert.Equal(t, 1, idxB)
	assert.True(t, created)

	// Re-admitting returns the original index
	again, created := ix.Admit("a")
	assert.Equal(t, idxA, again)
	assert.False(t, created)

	assert.Equal(t, 2, ix.Len())
}

func TestIndex_Resolve(t *testing.T) {
	ix := graph.NewIndex()
	ix.Admit("a")

	idx, ok := ix.Resolve("a")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = ix.Resolve("missing")
	assert.False(t, ok)
}

func TestIndex_Key(t *testing.T) {
	ix := graph.NewIndex()
	ix.Admit("a")
	ix.Admit("b")

	assert.Equal(t, "a", ix.Key(0))
	assert.Equal(t, "b", ix.Key(1))
}

func TestIndex_IndicesStableAcrossInterleavedAdmissions(t *testing.T) {
	ix := graph.NewIndex()
	first, _ := ix.Admit("x")
	ix.Admit("y")
	ix.Admit("z")

	for range 3 {
		idx, created := ix.Admit("x")
		assert.Equal(t, first, idx)
		assert.False(t, created)
	}
	assert.Equal(t, 3, ix.Len())
}
