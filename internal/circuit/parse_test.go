// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
# a tiny Bell-pair preparation circuit
qubits 2
H 0
CNOT 0 1
`
	c, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, c.NumQubits)
	require.Len(t, c.Gates, 2)
	assert.Equal(t, Gate{Kind: GateH, Target: 0, Control: -1}, c.Gates[0])
	assert.Equal(t, Gate{Kind: GateCNOT, Target: 1, Control: 0}, c.Gates[1])
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("H 0\n"))
	assert.Error(t, err)
}

func TestParseRejectsOutOfRangeQubit(t *testing.T) {
	_, err := Parse(strings.NewReader("qubits 1\nH 5\n"))
	assert.Error(t, err)
}

func TestParseRejectsCNOTSameControlAndTarget(t *testing.T) {
	_, err := Parse(strings.NewReader("qubits 2\nCNOT 0 0\n"))
	assert.Error(t, err)
}

func TestParseUnknownGate(t *testing.T) {
	_, err := Parse(strings.NewReader("qubits 1\nFROB 0\n"))
	assert.Error(t, err)
}
