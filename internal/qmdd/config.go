// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Configs stores the values of the tunable parameters of a diagram.
type Configs struct {
	nqubits         int // number of qubit levels
	nodesize        int // initial size of the node arena
	bucketsize      int // number of buckets in each per-level chain array
	maxnodesize     int // maximum total number of nodes (0 if no limit)
	maxnodeincrease int // maximum number of nodes added to the arena at each resize (0 if no limit)
	minfreenodes    int // minimum percentage of nodes that should be free after GC before triggering a resize
	gcLimitInit     int // initial dynamic GC limit (UniqueTable's INITIAL_GC_LIMIT)
}

func makeconfigs(nqubits int) *Configs {
	c := &Configs{nqubits: nqubits}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = 2*nqubits + 2
	c.bucketsize = 1024
	c.gcLimitInit = 131072
	return c
}

// Nodesize sets a preferred initial size for the node arena. The arena grows
// automatically, but sizing it up front avoids early resizes.
func Nodesize(size int) func(*Configs) {
	return func(c *Configs) {
		if size >= 2*c.nqubits+2 {
			c.nodesize = size
		}
	}
}

// Bucketsize sets the (fixed) number of buckets used for each per-level
// unique-table chain array. It is rounded up to the next prime.
func Bucketsize(size int) func(*Configs) {
	return func(c *Configs) {
		if size > 0 {
			c.bucketsize = size
		}
	}
}

// Maxnodesize sets a limit on the number of nodes the arena may grow to. The
// default value (0) means there is no limit.
func Maxnodesize(size int) func(*Configs) {
	return func(c *Configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease sets a limit on the increase in size of the node arena at
// each resize. The default is about one million nodes; zero removes the
// limit.
func Maxnodeincrease(size int) func(*Configs) {
	return func(c *Configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection before we trigger a resize instead. The default is 20%.
func Minfreenodes(ratio int) func(*Configs) {
	return func(c *Configs) {
		c.minfreenodes = ratio
	}
}

// GCLimitInit sets the initial dynamic GC limit: garbage collection is only
// triggered once the live node count exceeds this many entries, and the limit
// itself grows once usage exceeds 90% of it.
func GCLimitInit(limit int) func(*Configs) {
	return func(c *Configs) {
		if limit > 0 {
			c.gcLimitInit = limit
		}
	}
}
