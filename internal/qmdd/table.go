// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"github.com/dalzilio-labs/qmddsift/internal/cnum"
)

// terminal is the reserved id of the single terminal node (the scalar 1).
const terminal int32 = 0

// Table is a hash-consed node store for matrix diagrams: an arena of nodes
// plus, for every qubit level, a fixed-size array of bucket heads and an
// intrusive singly-linked chain running through each node's next field. It
// plays the role the teacher's buddy-tagged tables struct plays for BDD nodes,
// generalized to four weighted edges per node and to one chain array per
// level instead of one flat table.
type Table struct {
	nqubits  int
	nodes    []node
	freepos  int32
	freenum  int
	produced int

	buckets [][]int32 // buckets[level] has Configs.bucketsize (primed) entries

	refstack []int32 // protects nodes being built by a rewrite from GC

	gcLimit int // dynamic GC threshold, grows as in UniqueTable::garbageCollect
	history []gcpoint

	uniqueAccess, uniqueHit, uniqueMiss, uniqueChain int

	Configs

	weights *cnum.Table
}

type gcpoint struct {
	nodes     int
	freenodes int
}

// NewTable creates a node store for a diagram over nqubits levels.
func NewTable(nqubits int, weights *cnum.Table, options ...func(*Configs)) (*Table, error) {
	if nqubits < 1 || int32(nqubits) > _MAXVAR {
		return nil, errMemory
	}
	cfg := makeconfigs(nqubits)
	for _, f := range options {
		f(cfg)
	}
	t := &Table{nqubits: nqubits, weights: weights}
	t.Configs = *cfg

	size := primeGte(cfg.nodesize)
	t.nodes = make([]node, size)
	for k := range t.nodes {
		t.nodes[k] = node{level: -1, next: int32(k) + 1}
	}
	t.nodes[size-1].next = -1
	t.nodes[0] = node{refcou: _MAXREFCOUNT, level: int32(nqubits)}
	t.freepos = 1
	t.freenum = size - 1

	t.buckets = make([][]int32, nqubits)
	bsize := primeGte(cfg.bucketsize)
	for lvl := range t.buckets {
		b := make([]int32, bsize)
		for i := range b {
			b[i] = -1
		}
		t.buckets[lvl] = b
	}
	t.gcLimit = cfg.gcLimitInit
	t.refstack = make([]int32, 0, 4*nqubits)
	return t, nil
}

// Nqubits returns the number of qubit levels of the store.
func (t *Table) Nqubits() int { return t.nqubits }

// Terminal returns the id of the shared terminal node.
func (t *Table) Terminal() int32 { return terminal }

// Lookup returns the canonical node for (level, e), creating it if no node
// with that structural key already exists. It mirrors the teacher's makenode:
// first probe the bucket chain for level, and only allocate a fresh slot on a
// miss.
func (t *Table) Lookup(level int32, e [numEdges]edge) (int32, error) {
	t.uniqueAccess++
	bucket := t.buckets[level]
	h := t.bucket(level, e, len(bucket))
	res := bucket[h]
	for res != -1 {
		if t.nodes[res].e == e {
			t.uniqueHit++
			return res, nil
		}
		res = t.nodes[res].next
		t.uniqueChain++
	}
	t.uniqueMiss++

	if t.freepos == -1 {
		t.GarbageCollect(false)
		if (t.freenum*100)/len(t.nodes) <= t.minfreenodes {
			if err := t.growArena(); err != nil {
				return -1, err
			}
			bucket = t.buckets[level]
			h = t.bucket(level, e, len(bucket))
		}
		if t.freepos == -1 {
			return -1, errMemory
		}
	}

	id := t.freepos
	t.freepos = t.nodes[id].next
	t.freenum--
	t.produced++
	t.nodes[id] = node{level: level, e: e, next: bucket[h]}
	bucket[h] = id
	return id, nil
}

// IncRef increases the reference count on node n, saturating at
// _MAXREFCOUNT. It is a no-op on the terminal.
func (t *Table) IncRef(n int32) {
	if n == terminal {
		return
	}
	if t.nodes[n].refcou < _MAXREFCOUNT {
		t.nodes[n].refcou++
	}
}

// DecRef decreases the reference count on node n, saturating at zero. It is a
// no-op on the terminal and on nodes already pinned at _MAXREFCOUNT.
func (t *Table) DecRef(n int32) {
	if n == terminal {
		return
	}
	if t.nodes[n].refcou <= 0 {
		return
	}
	if t.nodes[n].refcou < _MAXREFCOUNT {
		t.nodes[n].refcou--
	}
}

// RefCount reports the current reference count of node n.
func (t *Table) RefCount(n int32) int32 {
	if n == terminal {
		return _MAXREFCOUNT
	}
	return t.nodes[n].refcou
}

// Level returns the qubit level of node n.
func (t *Table) Level(n int32) int32 { return t.nodes[n].level }

// Edges returns a copy of the four quadrant edges of node n.
func (t *Table) Edges(n int32) [numEdges]edge { return t.nodes[n].e }

// Edge returns the i'th quadrant edge of node n.
func (t *Table) Edge(n int32, i int) edge { return t.nodes[n].e[i] }

// EdgeAt returns the target and weight of node n's i'th quadrant edge,
// for callers outside this package (tests, front-ends) that cannot name
// the unexported edge type itself.
func (t *Table) EdgeAt(n int32, i int) (target int32, weight cnum.Handle) {
	e := t.nodes[n].e[i]
	return e.target, e.weight
}

// GetBucketColumn detaches and returns the entire bucket array for level,
// resetting the live table to empty. Callers use this to iterate every node
// at a level without observing concurrent insertions caused by their own
// rewrite, exactly as UniqueTable::getTableColumn does before a level swap.
func (t *Table) GetBucketColumn(level int32) []int32 {
	col := t.buckets[level]
	fresh := make([]int32, len(col))
	for i := range fresh {
		fresh[i] = -1
	}
	t.buckets[level] = fresh
	return col
}

// ReHash removes node n from the bucket chain it occupied under keyBefore
// (captured before n's edges were mutated) and reinserts it under its current
// (post-mutation) edges, restoring the one-canonical-node-per-key invariant.
// If n is not in that chain (as when its level's column was detached with
// GetBucketColumn before a rewrite), nothing is unlinked and n is only
// inserted. It mirrors UniqueTable::alterUniqueTable.
func (t *Table) ReHash(n int32, keyBefore int32) {
	level := t.nodes[n].level
	bucket := t.buckets[level]
	size := len(bucket)
	cur := bucket[keyBefore]
	if cur == n {
		bucket[keyBefore] = t.nodes[n].next
	} else {
		for cur != -1 {
			nxt := t.nodes[cur].next
			if nxt == n {
				t.nodes[cur].next = t.nodes[n].next
				break
			}
			cur = nxt
		}
	}
	h := t.bucket(level, t.nodes[n].e, size)
	t.nodes[n].next = bucket[h]
	bucket[h] = n
}

// verifyBucketPlacement reports whether node n is currently reachable from
// its level's bucket array under its present key, a debug-only consistency
// check exercised by the package's tests after a rewrite.
func (t *Table) verifyBucketPlacement(n int32) bool {
	level := t.nodes[n].level
	h := t.ptrhash(n, len(t.buckets[level]))
	for cur := t.buckets[level][h]; cur != -1; cur = t.nodes[cur].next {
		if cur == n {
			return true
		}
	}
	return false
}

// KeyOf returns the current bucket index of node n at its level, for use as
// the keyBefore argument to a later ReHash call.
func (t *Table) KeyOf(n int32) int32 {
	level := t.nodes[n].level
	return t.bucket(level, t.nodes[n].e, len(t.buckets[level]))
}

// Clear resets the table to the empty diagram (only the terminal remains).
func (t *Table) Clear() {
	size := len(t.nodes)
	for k := range t.nodes {
		t.nodes[k] = node{level: -1, next: int32(k) + 1}
	}
	t.nodes[size-1].next = -1
	t.nodes[0] = node{refcou: _MAXREFCOUNT, level: int32(t.nqubits)}
	t.freepos = 1
	t.freenum = size - 1
	for lvl := range t.buckets {
		for i := range t.buckets[lvl] {
			t.buckets[lvl][i] = -1
		}
	}
	t.refstack = t.refstack[:0]
}

// Size returns the number of live (non-free) nodes, excluding the terminal.
func (t *Table) Size() int {
	return len(t.nodes) - t.freenum - 1
}
