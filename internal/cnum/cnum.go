// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cnum implements a hash-consed table of complex weights, the
// quantum-diagram analogue of the shared constant pool a decision-diagram
// library keeps for its terminal values. Weights are looked up by value
// within a fixed tolerance and referred to afterwards by a small integer
// Handle, so that edges can compare weights in O(1) instead of carrying raw
// floating point numbers.
package cnum

import (
	"fmt"
	"math"
	"sync"
)

// Handle is an index into a Table. The zero Handle always denotes the
// complex value 0, and Handle(1) always denotes 1, mirroring the reserved
// low indices of the teacher's node table.
type Handle int32

// DefaultTolerance is the default approximate-equality tolerance used when
// interning new weights, matching the magnitude MQT Core uses for its
// ComplexNumbers table.
const DefaultTolerance = 1e-13

// Table is a hash-consed store of complex128 values.
type Table struct {
	mu        sync.Mutex
	values    []complex128
	tolerance float64
}

// New creates a weight table with the two reserved entries 0 and 1 already
// interned.
func New(tolerance float64) *Table {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	t := &Table{tolerance: tolerance}
	t.values = append(t.values, 0, 1)
	return t
}

// Zero returns the handle for the complex value 0.
func (t *Table) Zero() Handle { return 0 }

// One returns the handle for the complex value 1.
func (t *Table) One() Handle { return 1 }

// Lookup returns the handle for c, reusing an existing entry within the
// table's tolerance or interning a new one.
func (t *Table) Lookup(c complex128) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, v := range t.values {
		if approxEqual(v, c, t.tolerance) {
			return Handle(i)
		}
	}
	t.values = append(t.values, c)
	return Handle(len(t.values) - 1)
}

// Value returns the complex number a handle refers to.
func (t *Table) Value(h Handle) complex128 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values[h]
}

// Mul returns the handle for the product of the values behind a and b.
func (t *Table) Mul(a, b Handle) Handle {
	if a == t.Zero() || b == t.Zero() {
		return t.Zero()
	}
	if a == t.One() {
		return b
	}
	if b == t.One() {
		return a
	}
	return t.Lookup(t.Value(a) * t.Value(b))
}

// Div returns the handle for the quotient of the values behind a and b. The
// caller must ensure b is non-zero.
func (t *Table) Div(a, b Handle) Handle {
	if a == t.Zero() {
		return t.Zero()
	}
	if b == t.One() {
		return a
	}
	return t.Lookup(t.Value(a) / t.Value(b))
}

// ApproxEqual reports whether a and b denote approximately the same complex
// value, within the table's configured tolerance.
func (t *Table) ApproxEqual(a, b Handle) bool {
	if a == b {
		return true
	}
	return approxEqual(t.Value(a), t.Value(b), t.tolerance)
}

// String renders the value behind h for diagnostics and dot export.
func (t *Table) String(h Handle) string {
	v := t.Value(h)
	if imag(v) == 0 {
		return fmt.Sprintf("%.4g", real(v))
	}
	return fmt.Sprintf("%.4g%+.4gi", real(v), imag(v))
}

// Len reports the number of distinct weights currently interned.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.values)
}

func approxEqual(a, b complex128, tol float64) bool {
	d := a - b
	return math.Hypot(real(d), imag(d)) <= tol
}
