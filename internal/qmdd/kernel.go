// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"errors"
)

// _MAXVAR is the maximal number of levels (qubits) in a diagram. We use only
// the first 21 bits of a node's level field for encoding the level itself, and
// reserve the high bits for GC marking, mirroring the bit layout used for BDD
// levels.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// stick nodes (such as the terminal) in the node list so that they are never
// reclaimed by garbage collection.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default limit on the number of nodes added to the
// arena in a single resize.
const _DEFAULTMAXNODEINC int = 1 << 20

// _MINFREENODES is the minimal percentage of free nodes that must remain
// after a garbage collection before we resize the arena instead.
const _MINFREENODES int = 20

var errMemory = errors.New("unable to free memory or resize node table")

// numEdges is the branching factor of a matrix node: one edge per quadrant of
// the node's local 2x2 block-matrix decomposition.
const numEdges = 4
