// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalzilio-labs/qmddsift/internal/cnum"
)

func newTestDiagram(t *testing.T, nqubits int) (*Diagram, *cnum.Table) {
	t.Helper()
	w := cnum.New(0)
	d, err := NewDiagram(nqubits, w)
	require.NoError(t, err)
	return d, w
}

func TestLookupIsCanonical(t *testing.T) {
	d, w := newTestDiagram(t, 2)
	one, zero := w.One(), w.Zero()
	e := [numEdges]edge{
		{target: d.table.Terminal(), weight: one},
		{target: d.table.Terminal(), weight: zero},
		{target: d.table.Terminal(), weight: zero},
		{target: d.table.Terminal(), weight: one},
	}
	a, err := d.table.Lookup(0, e)
	require.NoError(t, err)
	b, err := d.table.Lookup(0, e)
	require.NoError(t, err)
	assert.Equal(t, a, b, "structurally identical nodes must hash-cons to the same id")
}

func TestLookupDistinguishesLevels(t *testing.T) {
	d, w := newTestDiagram(t, 3)
	one, zero := w.One(), w.Zero()
	e := [numEdges]edge{
		{target: d.table.Terminal(), weight: one},
		{target: d.table.Terminal(), weight: zero},
		{target: d.table.Terminal(), weight: zero},
		{target: d.table.Terminal(), weight: one},
	}
	a, err := d.table.Lookup(0, e)
	require.NoError(t, err)
	b, err := d.table.Lookup(1, e)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "the same edge structure at different levels must be distinct nodes")
}

func TestRefCountSaturatesAndDoesNotUnderflow(t *testing.T) {
	d, _ := newTestDiagram(t, 1)
	id, err := d.Identity(0, d.table.Terminal())
	require.NoError(t, err)

	for i := 0; i < int(_MAXREFCOUNT)+10; i++ {
		d.table.IncRef(id)
	}
	assert.Equal(t, _MAXREFCOUNT, d.table.RefCount(id))

	for i := 0; i < int(_MAXREFCOUNT)+10; i++ {
		d.table.DecRef(id)
	}
	assert.GreaterOrEqual(t, d.table.RefCount(id), int32(0))
}

func TestTerminalRefCountIsPinned(t *testing.T) {
	d, _ := newTestDiagram(t, 1)
	d.table.DecRef(d.table.Terminal())
	assert.Equal(t, _MAXREFCOUNT, d.table.RefCount(d.table.Terminal()))
}

// buildSkippingDiagram builds a 3-level diagram by hand whose root has two
// edges that deliberately skip intermediate levels (one straight to the
// terminal, one straight to a level-0 node), the same shape CompleteSkipped
// is meant to repair, without depending on the circuit package (which
// itself imports qmdd and would create an import cycle from here).
func buildSkippingDiagram(t *testing.T) (*Diagram, int32) {
	t.Helper()
	d, w := newTestDiagram(t, 3)
	one, zero := w.One(), w.Zero()

	n0, err := d.MakeNode(0, [numEdges]int32{d.table.Terminal(), d.table.Terminal(), d.table.Terminal(), d.table.Terminal()},
		[numEdges]cnum.Handle{one, zero, zero, one})
	require.NoError(t, err)

	root, err := d.MakeNode(2, [numEdges]int32{d.table.Terminal(), d.table.Terminal(), d.table.Terminal(), n0},
		[numEdges]cnum.Handle{one, zero, zero, one})
	require.NoError(t, err)
	d.table.IncRef(root)
	return d, root
}

func TestEveryLiveNodeIsExactlyOneLevelAboveItsNonZeroChildren(t *testing.T) {
	d, root := buildSkippingDiagram(t)
	require.NoError(t, d.CompleteSkipped(root))

	for n := int32(1); n < int32(len(d.table.nodes)); n++ {
		if d.table.nodes[n].free() {
			continue
		}
		level := d.table.Level(n)
		for _, e := range d.table.Edges(n) {
			if e.target == d.table.Terminal() || e.weight == d.Weights().Zero() {
				continue
			}
			assert.Equal(t, level-1, d.table.Level(e.target), "node %d at level %d has a non-skipped child at the wrong level", n, level)
		}
	}
}

func TestCompleteSkippedIsIdempotent(t *testing.T) {
	d, root := buildSkippingDiagram(t)
	require.NoError(t, d.CompleteSkipped(root))
	sizeAfterFirst := d.Size()
	require.NoError(t, d.CompleteSkipped(root))
	assert.Equal(t, sizeAfterFirst, d.Size(), "completing an already-complete diagram must not add nodes")
}
