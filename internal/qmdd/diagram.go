// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package qmdd implements a hash-consed, reduced, ordered matrix decision
// diagram for the functionality of a quantum circuit, together with the
// dynamic variable reordering machinery (level rewrite primitives, a step
// log, a sifting driver and an outer orchestrator) used to shrink it.
package qmdd

import (
	"github.com/dalzilio-labs/qmddsift/internal/cnum"
)

// Diagram owns a node store and the shared complex-weight table it draws its
// edge weights from, together with the bookkeeping needed to reorder its
// variables: the current and initial permutation of qubits to levels, and the
// step log recording every rewrite applied so far.
type Diagram struct {
	table   *Table
	weights *cnum.Table

	permutation   []int32 // permutation[level] = qubit id currently sitting at level
	initialLayout []int32

	log *stepLog

	error error
}

// NewDiagram creates an empty-identity diagram over nqubits levels backed by
// weights.
func NewDiagram(nqubits int, weights *cnum.Table, options ...func(*Configs)) (*Diagram, error) {
	table, err := NewTable(nqubits, weights, options...)
	if err != nil {
		return nil, err
	}
	perm := make([]int32, nqubits)
	for i := range perm {
		perm[i] = int32(i)
	}
	initial := make([]int32, nqubits)
	copy(initial, perm)
	return &Diagram{
		table:         table,
		weights:       weights,
		permutation:   perm,
		initialLayout: initial,
		log:           newStepLog(),
	}, nil
}

// Table returns the underlying node store.
func (d *Diagram) Table() *Table { return d.table }

// Weights returns the shared complex weight table.
func (d *Diagram) Weights() *cnum.Table { return d.weights }

// Size returns the number of live nodes in the diagram.
func (d *Diagram) Size() int { return d.table.Size() }

// Permutation returns the qubit id currently occupying each level.
func (d *Diagram) Permutation() []int32 {
	out := make([]int32, len(d.permutation))
	copy(out, d.permutation)
	return out
}

// Identity builds the canonical identity node at level, whose two diagonal
// edges point at child (weight one) and whose off-diagonal edges are zero.
// It is the building block used both by CompleteSkipped's stub chains and by
// circuit construction for untouched qubits.
func (d *Diagram) Identity(level int32, child int32) (int32, error) {
	one := d.weights.One()
	zero := d.weights.Zero()
	e := [numEdges]edge{
		{target: child, weight: one},
		{target: terminal, weight: zero},
		{target: terminal, weight: zero},
		{target: child, weight: one},
	}
	return d.table.Lookup(level, e)
}

// MakeNode creates (or reuses) the canonical node at level whose four
// quadrant edges are the given children and weights, incrementing each
// child's reference count on its caller's behalf. It is the entry point
// front-ends outside this package (the circuit builder) use to construct a
// diagram bottom-up without reaching into the unexported edge/node types.
func (d *Diagram) MakeNode(level int32, children [numEdges]int32, weights [numEdges]cnum.Handle) (int32, error) {
	var e [numEdges]edge
	for i := 0; i < numEdges; i++ {
		e[i] = edge{target: children[i], weight: weights[i]}
	}
	id, err := d.table.Lookup(level, e)
	if err != nil {
		return -1, err
	}
	for _, c := range children {
		d.table.IncRef(c)
	}
	return id, nil
}

// CheckRefcounts walks every live node and reports whether every reference
// count lies in [0, _MAXREFCOUNT], i.e. none has overflowed past
// _MAXREFCOUNT or gone negative, a diagnostic adapted from
// DDCompletement.hpp's checkRefValue.
func (d *Diagram) CheckRefcounts() bool {
	ok := true
	for n := int32(1); n < int32(len(d.table.nodes)); n++ {
		if d.table.nodes[n].free() {
			continue
		}
		if d.table.nodes[n].refcou < 0 || d.table.nodes[n].refcou > _MAXREFCOUNT {
			ok = false
		}
	}
	return ok
}

// CheckNoOrphans reports whether every node reachable from root has a
// positive reference count along its path, adapted from
// DDCompletement.hpp's checkForCorrect.
func (d *Diagram) CheckNoOrphans(root int32) bool {
	visited := make(map[int32]bool)
	var walk func(n int32) bool
	walk = func(n int32) bool {
		if n == terminal || visited[n] {
			return true
		}
		visited[n] = true
		if d.table.RefCount(n) <= 0 {
			return false
		}
		for _, e := range d.table.Edges(n) {
			if e.target != terminal && !walk(e.target) {
				return false
			}
		}
		return true
	}
	return walk(root)
}
