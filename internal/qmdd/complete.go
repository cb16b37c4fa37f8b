// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// CompleteSkipped walks the diagram rooted at root and inserts explicit
// identity stub nodes wherever an edge jumps more than one level, or
// terminates above level 0, so that every node's four edges always target
// either the terminal or a node at exactly one level below. Edges with a zero
// weight are left alone: they denote a genuinely empty quadrant and need no
// backing structure. Grounded in DDCompletement.hpp's lvlCmpl /
// completeSkippedNodev2, expressed here as a visited-set DFS instead of an
// explicit BFS queue, since fixing one node's edges never touches another
// node already on the traversal stack.
func (d *Diagram) CompleteSkipped(root int32) error {
	visited := make(map[int32]bool)
	return d.completeWalk(root, visited)
}

func (d *Diagram) completeWalk(n int32, visited map[int32]bool) error {
	if n == terminal || visited[n] {
		return nil
	}
	visited[n] = true

	t := d.table
	zero := d.weights.Zero()
	parentLevel := t.Level(n)
	edges := t.Edges(n)
	changed := false
	keyBefore := t.KeyOf(n)

	for i, e := range edges {
		if e.weight == zero {
			continue
		}
		childLevel := int32(-1)
		if e.target != terminal {
			childLevel = t.Level(e.target)
		}
		if childLevel == parentLevel-1 {
			continue
		}
		stub, err := d.buildStubChain(e.target, childLevel, parentLevel-1)
		if err != nil {
			return err
		}
		old := e.target
		edges[i] = edge{target: stub, weight: e.weight}
		t.IncRef(stub)
		if old != terminal {
			t.DecRef(old)
		}
		changed = true
	}

	if changed {
		t.nodes[n].e = edges
		t.ReHash(n, keyBefore)
	}

	for _, e := range t.Edges(n) {
		if e.weight != zero && e.target != terminal {
			if err := d.completeWalk(e.target, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildStubChain returns the id of an identity stub at level down, whose
// diagonal edges eventually reach target (a node at level childLevel, or the
// terminal if childLevel is -1), inserting one stub per skipped level in
// between.
func (d *Diagram) buildStubChain(target int32, childLevel, down int32) (int32, error) {
	t := d.table
	one := d.weights.One()
	zero := d.weights.Zero()

	cur := target
	curLevel := childLevel
	for curLevel < down {
		next := curLevel + 1
		stub := [numEdges]edge{
			{target: cur, weight: one},
			{target: terminal, weight: zero},
			{target: terminal, weight: zero},
			{target: cur, weight: one},
		}
		id, err := t.Lookup(next, stub)
		if err != nil {
			return -1, err
		}
		t.IncRef(cur)
		t.IncRef(cur)
		cur = id
		curLevel = next
	}
	return cur, nil
}

// hasSkippedSubNodes reports whether any edge of n jumps more than one
// level or terminates above level 0, used by tests and by the orchestrator's
// pre-sift invariant check.
func (d *Diagram) hasSkippedSubNodes(n int32) bool {
	if n == terminal {
		return false
	}
	t := d.table
	level := t.Level(n)
	zero := d.weights.Zero()
	for _, e := range t.Edges(n) {
		if e.weight == zero {
			continue
		}
		if e.target == terminal {
			if level != 0 {
				return true
			}
			continue
		}
		if t.Level(e.target) != level-1 {
			return true
		}
	}
	return false
}
