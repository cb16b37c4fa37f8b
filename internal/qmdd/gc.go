// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/rs/zerolog/log"

// GarbageCollect reclaims nodes that are not reachable from a node with a
// positive reference count, nor from the transient refstack used while a
// rewrite primitive is mid-flight. Unless force is true, collection is
// skipped while the live node count stays under the dynamic gcLimit; the
// limit itself grows by gcLimitInit once post-collection usage exceeds 90% of
// it, exactly as UniqueTable::garbageCollect does in the original
// implementation.
func (t *Table) GarbageCollect(force bool) int {
	live := t.Size()
	if !force && live <= t.gcLimit {
		return 0
	}
	log.Debug().Int("live", live).Bool("force", force).Msg("qmdd: starting gc")

	t.history = append(t.history, gcpoint{nodes: len(t.nodes), freenodes: t.freenum})

	for _, r := range t.refstack {
		t.markrec(r)
	}
	for k := int32(1); k < int32(len(t.nodes)); k++ {
		if !t.nodes[k].free() && t.nodes[k].refcou > 0 {
			t.markrec(k)
		}
	}

	for lvl := range t.buckets {
		for i := range t.buckets[lvl] {
			t.buckets[lvl][i] = -1
		}
	}
	t.freepos = -1
	t.freenum = 0
	reclaimed := 0
	for n := int32(len(t.nodes)) - 1; n >= 1; n-- {
		if t.nodes[n].free() {
			t.nodes[n].next = t.freepos
			t.freepos = n
			t.freenum++
			continue
		}
		if t.ismarked(n) {
			t.unmarknode(n)
			level := t.nodes[n].level
			h := t.bucket(level, t.nodes[n].e, len(t.buckets[level]))
			t.nodes[n].next = t.buckets[level][h]
			t.buckets[level][h] = n
			continue
		}
		reclaimed++
		t.nodes[n] = node{level: -1, next: t.freepos}
		t.freepos = n
		t.freenum++
	}

	newLive := t.Size()
	if newLive > t.gcLimit/10*9 {
		t.gcLimit = newLive + t.Configs.gcLimitInit
	}
	log.Debug().Int("reclaimed", reclaimed).Int("gcLimit", t.gcLimit).Msg("qmdd: gc finished")
	return reclaimed
}

func (t *Table) markrec(n int32) {
	if n == terminal || t.ismarked(n) || t.nodes[n].free() {
		return
	}
	t.marknode(n)
	for _, e := range t.nodes[n].e {
		if e.target != terminal {
			t.markrec(e.target)
		}
	}
}

// pushref pins node n against collection for the duration of a rewrite step
// and returns n so calls can be chained.
func (t *Table) Pushref(n int32) int32 {
	t.refstack = append(t.refstack, n)
	return n
}

// Popref releases the last k nodes pinned by Pushref.
func (t *Table) Popref(k int) {
	t.refstack = t.refstack[:len(t.refstack)-k]
}
