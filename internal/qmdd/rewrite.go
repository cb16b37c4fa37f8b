// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// permFunc maps a (topQuadrant, childQuadrant) pair, each in [0,3] addressing
// a row/col position (row = idx/2, col = idx%2) of a 2x2 block, to the
// (newChildQuadrant, newGrandchildIndex) pair that the corresponding weighted
// path occupies after a level rewrite. All three rewrite primitives are one
// instantiation of the same local re-blocking of 16 grandchild edges into 4
// new children at level-1; only this remap differs between them.
type permFunc func(top, child int) (newChild, newGrand int)

func quad(row, col int) int { return row*2 + col }
func rowOf(q int) int       { return q / 2 }
func colOf(q int) int       { return q % 2 }

// swapPerm exchanges the two levels outright: the old child quadrant (row
// and column) becomes the new top quadrant and the old top quadrant becomes
// the new child quadrant, a transpose of the 4x4 grandchild table.
func swapPerm(top, child int) (int, int) {
	tr, tc := rowOf(top), colOf(top)
	cr, cc := rowOf(child), colOf(child)
	return quad(cr, cc), quad(tr, tc)
}

// upperLTPerm is the "upper" linear transform: the new top quadrant is the
// old top quadrant XORed with the old child quadrant (row bit with row bit,
// column bit with column bit), and the child quadrant is kept. Applying it
// twice is the identity.
func upperLTPerm(top, child int) (int, int) {
	tr, tc := rowOf(top), colOf(top)
	cr, cc := rowOf(child), colOf(child)
	return quad(tr^cr, tc^cc), quad(cr, cc)
}

// lowerLTPerm is the dual "lower" linear transform: the top quadrant is kept
// and the new child quadrant is the old child quadrant XORed with the old top
// quadrant. Applying it twice is the identity.
func lowerLTPerm(top, child int) (int, int) {
	tr, tc := rowOf(top), colOf(top)
	cr, cc := rowOf(child), colOf(child)
	return quad(tr, tc), quad(cr^tr, cc^tc)
}

// rebuildLevel rewrites every node currently at level, re-blocking it and its
// level-1 children according to perm. It is the single generic routine behind
// Swap, UpperLT and LowerLT.
func (d *Diagram) rebuildLevel(level int32, perm permFunc) error {
	if level <= 0 || int(level) >= d.table.nqubits {
		return errMemory
	}
	t := d.table
	// Detach level's bucket array so every node currently at this level is
	// visited exactly once, even though rebuildNode will reinsert each one
	// (under its mutated edges) into the freshly emptied array as it goes.
	column := t.GetBucketColumn(level)
	for _, head := range column {
		for n := head; n != -1; {
			next := t.nodes[n].next
			if err := d.rebuildNode(n, level, perm); err != nil {
				return err
			}
			n = next
		}
	}
	return nil
}

// rebuildNode re-blocks a single node n currently at level, replacing its
// children (which live at level-1) with four freshly looked-up children that
// absorb the level-1 structure, per perm. n itself moves to represent the
// other qubit, still at position level.
func (d *Diagram) rebuildNode(n int32, level int32, perm permFunc) error {
	t := d.table
	w := d.weights

	oldTop := t.nodes[n].e
	var grand [4][4]edge
	for top := 0; top < 4; top++ {
		te := oldTop[top]
		if te.weight == w.Zero() || te.target == terminal {
			for c := 0; c < 4; c++ {
				grand[top][c] = edge{target: terminal, weight: w.Zero()}
			}
			continue
		}
		childEdges := t.Edges(te.target)
		for c := 0; c < 4; c++ {
			ce := childEdges[c]
			grand[top][c] = edge{target: ce.target, weight: w.Mul(te.weight, ce.weight)}
		}
	}

	var newChild [4][4]edge
	for top := 0; top < 4; top++ {
		for child := 0; child < 4; child++ {
			nc, ng := perm(top, child)
			newChild[nc][ng] = grand[top][child]
		}
	}

	keyBefore := t.KeyOf(n)
	var newTop [4]edge
	newChildIDs := make([]int32, 4)
	pinned := 0
	for c := 0; c < 4; c++ {
		allZero := true
		for i := 0; i < 4; i++ {
			if newChild[c][i].weight != w.Zero() {
				allZero = false
				break
			}
		}
		if allZero {
			newTop[c] = edge{target: terminal, weight: w.Zero()}
			newChildIDs[c] = terminal
			continue
		}

		// Pull the first non-zero grandchild weight out as the common
		// factor, so structurally identical rows that differ only by a
		// scalar still hash-cons to the same level-1 node.
		factor := w.Zero()
		for i := 0; i < 4; i++ {
			if newChild[c][i].weight != w.Zero() {
				factor = newChild[c][i].weight
				break
			}
		}
		if factor == w.Zero() {
			newTop[c] = edge{target: terminal, weight: w.Zero()}
			newChildIDs[c] = terminal
			continue
		}

		normalized := newChild[c]
		if factor != w.One() {
			for i := 0; i < 4; i++ {
				normalized[i].weight = w.Div(normalized[i].weight, factor)
			}
		}

		id, err := t.Lookup(level-1, normalized)
		if err != nil {
			t.Popref(pinned)
			return err
		}
		t.Pushref(id)
		pinned++
		newChildIDs[c] = id
		newTop[c] = edge{target: id, weight: factor}
	}

	for _, old := range oldTop {
		if old.target != terminal {
			t.DecRef(old.target)
		}
	}
	for _, id := range newChildIDs {
		t.IncRef(id)
	}
	t.Popref(pinned)

	t.nodes[n].e = newTop
	t.ReHash(n, keyBefore)
	return nil
}

// Swap exchanges the variable at level with the one at level-1. Unlike
// UpperLT and LowerLT it also exchanges which qubit occupies each of the two
// levels, since a swap (and only a swap) changes the variable order.
func (d *Diagram) Swap(level int32) error {
	if err := d.rebuildLevel(level, swapPerm); err != nil {
		return err
	}
	d.permutation[level], d.permutation[level-1] = d.permutation[level-1], d.permutation[level]
	return nil
}

// UpperLT applies the upper linear transform between level and level-1.
func (d *Diagram) UpperLT(level int32) error {
	return d.rebuildLevel(level, upperLTPerm)
}

// LowerLT applies the lower linear transform between level and level-1.
func (d *Diagram) LowerLT(level int32) error {
	return d.rebuildLevel(level, lowerLTPerm)
}
