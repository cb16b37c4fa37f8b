// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/dalzilio-labs/qmddsift/internal/cnum"

// edge is a weighted pointer inside a matrix node: it targets another node (or
// the terminal, id 0) and carries a handle into the shared complex weight
// table.
type edge struct {
	target int32
	weight cnum.Handle
}

// node is a matrix-diagram vertex: a level (qubit index) and the four
// quadrant edges of the local 2x2 block decomposition at that level, laid out
//
//	e[0] e[1]
//	e[2] e[3]
//
// refcou counts external references and saturates at _MAXREFCOUNT, exactly
// like a BDD node's reference count; next implements the intrusive
// singly-linked bucket chain used by the unique table (or the arena free
// list, when the node is not live).
type node struct {
	refcou int32
	level  int32
	e      [numEdges]edge
	next   int32
}

func (n *node) free() bool {
	return n.level == -1
}

func (b *Table) ismarked(n int32) bool {
	return (b.nodes[n].level & 0x200000) != 0
}

func (b *Table) marknode(n int32) {
	b.nodes[n].level |= 0x200000
}

func (b *Table) unmarknode(n int32) {
	b.nodes[n].level &= 0x1FFFFF
}
