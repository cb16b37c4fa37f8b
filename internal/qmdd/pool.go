// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"math"

	"github.com/rs/zerolog/log"
)

// growArena doubles (bounded by maxnodeincrease and maxnodesize) the capacity
// of the node arena and rebuilds every level's bucket chains against the new
// set of live nodes. It mirrors the teacher's noderesize, generalized from a
// single flat hash table to one chain array per level.
func (t *Table) growArena() error {
	log.Debug().Int("from", len(t.nodes)).Msg("qmdd: growing node arena")
	oldsize := len(t.nodes)
	newsize := oldsize
	if t.maxnodesize > 0 && oldsize >= t.maxnodesize {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		newsize = math.MaxInt32 - 1
	} else {
		newsize = newsize << 1
	}
	if t.maxnodeincrease > 0 && newsize > oldsize+t.maxnodeincrease {
		newsize = oldsize + t.maxnodeincrease
	}
	if t.maxnodesize > 0 && newsize > t.maxnodesize {
		newsize = t.maxnodesize
	}
	newsize = primeLte(newsize)
	if newsize <= oldsize {
		return errMemory
	}

	grown := make([]node, newsize)
	copy(grown, t.nodes)
	for n := oldsize; n < newsize; n++ {
		grown[n] = node{level: -1, next: int32(n) + 1}
	}
	grown[newsize-1].next = -1
	t.nodes = grown

	t.freepos = -1
	t.freenum = 0
	for lvl := range t.buckets {
		for i := range t.buckets[lvl] {
			t.buckets[lvl][i] = -1
		}
	}
	for n := int32(newsize) - 1; n >= 1; n-- {
		if !t.nodes[n].free() {
			level := t.nodes[n].level
			h := t.bucket(level, t.nodes[n].e, len(t.buckets[level]))
			t.nodes[n].next = t.buckets[level][h]
			t.buckets[level][h] = n
		} else {
			t.nodes[n].next = t.freepos
			t.freepos = n
			t.freenum++
		}
	}
	log.Debug().Int("to", newsize).Msg("qmdd: node arena grown")
	return nil
}
