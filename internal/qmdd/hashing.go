// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// _PAIR is a mapping function that maps (bijectively) a pair of integers (a,
// b) into a unique integer, then casts it into a value in the interval
// [0..size) using a modulo operation (the Cantor pairing function).
func _PAIR(a, b int64, size int) int64 {
	ua := uint64(a)
	ub := uint64(b)
	return int64(((((ua + ub) * (ua + ub + 1)) / 2) + ua) % uint64(size))
}

// _TRIPLE folds a third value into a pair hash.
func _TRIPLE(a, b, c int64, size int) int64 {
	return _PAIR(c, _PAIR(a, b, size), size)
}

// edgehash combines a (target, weight) pair into a single integer key.
func edgehash(e edge) int64 {
	return _PAIR(int64(e.target), int64(e.weight), 1<<30)
}

// bucket is #(level, e0, e1, e2, e3), folded pairwise and reduced modulo the
// per-level bucket count.
func (t *Table) bucket(level int32, e [numEdges]edge, size int) int32 {
	h := _PAIR(edgehash(e[0]), edgehash(e[1]), 1<<30)
	h = _PAIR(h, edgehash(e[2]), 1<<30)
	h = _PAIR(h, edgehash(e[3]), 1<<30)
	h = _TRIPLE(int64(level), h, 0, size)
	return int32(h)
}

func (t *Table) ptrhash(n int32, size int) int32 {
	nd := &t.nodes[n]
	return t.bucket(nd.level, nd.e, size)
}
