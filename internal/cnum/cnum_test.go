// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservesZeroAndOne(t *testing.T) {
	tbl := New(0)
	assert.Equal(t, Handle(0), tbl.Zero())
	assert.Equal(t, Handle(1), tbl.One())
	assert.Equal(t, complex128(0), tbl.Value(tbl.Zero()))
	assert.Equal(t, complex128(1), tbl.Value(tbl.One()))
}

func TestLookupDedupesWithinTolerance(t *testing.T) {
	tbl := New(1e-9)
	a := tbl.Lookup(0.5 + 0.5i)
	b := tbl.Lookup(0.5 + 0.5i + 1e-12)
	c := tbl.Lookup(0.6 + 0.5i)

	assert.Equal(t, a, b, "values within tolerance should share a handle")
	assert.NotEqual(t, a, c, "values outside tolerance should get distinct handles")
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b complex128
		want complex128
	}{
		{"zero times anything is zero", 0, 3 + 4i, 0},
		{"one times x is x", 1, 2 - 1i, 2 - 1i},
		{"x times one is x", 2 - 1i, 1, 2 - 1i},
		{"general product", 1 + 1i, 1 - 1i, 2},
	}
	tbl := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.Mul(tbl.Lookup(tt.a), tbl.Lookup(tt.b))
			assert.InDelta(t, real(tt.want), real(tbl.Value(got)), 1e-9)
			assert.InDelta(t, imag(tt.want), imag(tbl.Value(got)), 1e-9)
		})
	}
}

func TestApproxEqual(t *testing.T) {
	tbl := New(1e-6)
	a := tbl.Lookup(1.0000001 + 0i)
	b := tbl.Lookup(1.0 + 0i)
	require.NotNil(t, tbl)
	assert.True(t, tbl.ApproxEqual(a, b))
}

func TestLen(t *testing.T) {
	tbl := New(0)
	assert.Equal(t, 2, tbl.Len())
	tbl.Lookup(42)
	assert.Equal(t, 3, tbl.Len())
	tbl.Lookup(42)
	assert.Equal(t, 3, tbl.Len(), "re-looking up an existing value must not grow the table")
}
