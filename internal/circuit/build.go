// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package circuit

import (
	"github.com/dalzilio-labs/qmddsift/internal/cnum"
	"github.com/dalzilio-labs/qmddsift/internal/qmdd"
)

// Build composes the circuit's full unitary and decomposes it, quadrant by
// quadrant, into nodes of d, returning the root node id and its edge weight.
//
// A submatrix that is exactly zero collapses to a single zero-weight edge to
// the terminal, and a submatrix that is exactly the identity collapses to a
// weight-one edge straight to the terminal without materializing the levels
// in between — this is the usual source of the level-skipping
// qmdd.Diagram.CompleteSkipped repairs, and arises here whenever such a block
// is exactly the identity, e.g. a block over a suffix of qubits no gate
// touches. Weights are not factored out while building, so a block that is a
// scaled identity (such as 1/sqrt(2) times the identity after an H gate) is
// not collapsed and is expanded level by level.
func Build(d *qmdd.Diagram, c *Circuit) (int32, cnum.Handle, error) {
	m, err := c.Functionality()
	if err != nil {
		return -1, 0, err
	}
	top := int32(d.Table().Nqubits() - 1)
	return buildRec(d, m, top)
}

func buildRec(d *qmdd.Diagram, m cmatrix, level int32) (int32, cnum.Handle, error) {
	w := d.Weights()
	if isZero(m) {
		return d.Table().Terminal(), w.Zero(), nil
	}
	if isIdentity(m) {
		return d.Table().Terminal(), w.One(), nil
	}
	dim := len(m)
	if dim == 1 {
		return d.Table().Terminal(), w.Lookup(m[0][0]), nil
	}

	half := dim / 2
	quads := [4]cmatrix{
		sub(m, 0, 0, half),
		sub(m, 0, half, half),
		sub(m, half, 0, half),
		sub(m, half, half, half),
	}
	var children [4]int32
	var weights [4]cnum.Handle
	for i, q := range quads {
		c, cw, err := buildRec(d, q, level-1)
		if err != nil {
			return -1, 0, err
		}
		children[i], weights[i] = c, cw
	}
	id, err := d.MakeNode(level, children, weights)
	if err != nil {
		return -1, 0, err
	}
	return id, w.One(), nil
}

func isZero(m cmatrix) bool {
	for _, row := range m {
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

func isIdentity(m cmatrix) bool {
	n := len(m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				return false
			}
		}
	}
	return true
}
