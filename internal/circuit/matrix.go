// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package circuit

import (
	"fmt"

	"github.com/itsubaki/q/pkg/math/matrix"
	"github.com/itsubaki/q/pkg/quantum/gate"
)

// cmatrix is a dense complex matrix, row-major, used only while composing a
// circuit's full unitary before it is handed to the diagram builder.
type cmatrix [][]complex128

func identity(dim int) cmatrix {
	m := make(cmatrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
		m[i][i] = 1
	}
	return m
}

// kron is the Kronecker (tensor) product of a and b.
func kron(a, b cmatrix) cmatrix {
	ra, ca := len(a), len(a[0])
	rb, cb := len(b), len(b[0])
	out := make(cmatrix, ra*rb)
	for i := range out {
		out[i] = make([]complex128, ca*cb)
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			if a[i][j] == 0 {
				continue
			}
			for k := 0; k < rb; k++ {
				for l := 0; l < cb; l++ {
					out[i*rb+k][j*cb+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

func matmul(a, b cmatrix) cmatrix {
	n, k, m := len(a), len(b), len(b[0])
	out := make(cmatrix, n)
	for i := range out {
		out[i] = make([]complex128, m)
		for j := 0; j < m; j++ {
			var sum complex128
			for t := 0; t < k; t++ {
				sum += a[i][t] * b[t][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func sub(m cmatrix, rowOff, colOff, size int) cmatrix {
	out := make(cmatrix, size)
	for i := 0; i < size; i++ {
		out[i] = append([]complex128(nil), m[rowOff+i][colOff:colOff+size]...)
	}
	return out
}

// toCmatrix copies an itsubaki/q gate matrix into our local representation.
func toCmatrix(m matrix.Matrix) cmatrix {
	out := make(cmatrix, len(m))
	for i, row := range m {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}

func baseGate(kind GateKind) (cmatrix, error) {
	switch kind {
	case GateH:
		return toCmatrix(gate.H()), nil
	case GateX:
		return toCmatrix(gate.X()), nil
	case GateY:
		return toCmatrix(gate.Y()), nil
	case GateZ:
		return toCmatrix(gate.Z()), nil
	case GateS:
		return toCmatrix(gate.S()), nil
	case GateT:
		return toCmatrix(gate.T()), nil
	default:
		return nil, fmt.Errorf("circuit: gate %s has no single-qubit matrix", kind)
	}
}

// embedSingle tensors a single-qubit gate matrix u into the identity of the
// other n-1 qubits, with u acting on qubit target (qubit 0 is the most
// significant / outermost factor of the tensor product, matching the
// row/column bit order the diagram builder splits on).
func embedSingle(u cmatrix, n, target int) cmatrix {
	left := identity(1 << uint(target))
	right := identity(1 << uint(n-target-1))
	return kron(kron(left, u), right)
}

// cnotMatrix builds the full n-qubit matrix for a CNOT with the given
// control and target, via itsubaki/q's n-qubit CNOT builder.
func cnotMatrix(n, control, target int) cmatrix {
	return toCmatrix(gate.CNOT(n, control, target))
}

// Functionality composes every gate in order into the circuit's full
// 2^n x 2^n unitary matrix (the first gate applied is the rightmost factor,
// matching standard operator composition order).
func (c *Circuit) Functionality() (cmatrix, error) {
	dim := 1 << uint(c.NumQubits)
	acc := identity(dim)
	for i, g := range c.Gates {
		var gm cmatrix
		if g.Kind == GateCNOT {
			gm = cnotMatrix(c.NumQubits, g.Control, g.Target)
		} else {
			base, err := baseGate(g.Kind)
			if err != nil {
				return nil, fmt.Errorf("circuit: gate %d: %w", i, err)
			}
			gm = embedSingle(base, c.NumQubits, g.Target)
		}
		acc = matmul(gm, acc)
	}
	return acc, nil
}
