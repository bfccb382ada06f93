package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walletgraph/walletgraph/internal/graph"
)

func TestLedger_Record(t *testing.T) {
	l := graph.NewLedger()
	l.Grow(2)

	assert.True(t, l.Record(0, 3))
	assert.True(t, l.Record(0, 1))

	// Recording the same fact twice is a no-op
	assert.False(t, l.Record(0, 3))

	assert.Equal(t, []int{1, 3}, l.Owners(0))
	assert.Nil(t, l.Owners(1))
}

func TestLedger_SingleOwnerIsSetOfOne(t *testing.T) {
	l := graph.NewLedger()
	l.Grow(1)

	l.Record(0, 0)
	assert.Equal(t, []int{0}, l.Owners(0))
	assert.True(t, l.HasOwners(0))

	// Growing into the multi-owner case needs no representation change
	l.Record(0, 5)
	assert.Equal(t, []int{0, 5}, l.Owners(0))
}

func TestLedger_Grow(t *testing.T) {
	l := graph.NewLedger()
	l.Grow(3)
	assert.Equal(t, 3, l.Len())

	// Growing to a smaller size is a no-op
	l.Grow(1)
	assert.Equal(t, 3, l.Len())

	// New entries start with no owners
	assert.False(t, l.HasOwners(2))
}

func TestLedger_OutOfRangePanics(t *testing.T) {
	l := graph.NewLedger()
	l.Grow(1)

	assert.Panics(t, func() { l.Record(1, 0) })
	assert.Panics(t, func() { l.Record(-1, 0) })
	assert.Panics(t, func() { l.Record(0, -1) })
	assert.Panics(t, func() { l.Owners(5) })
	assert.Panics(t, func() { l.HasOwners(-1) })
}
