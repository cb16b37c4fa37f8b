// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"sifting", SchemeSifting, false},
		{"lt-upper", SchemeLTransUpper, false},
		{"lt-lower", SchemeLTransLower, false},
		{"lt-mixed", SchemeLTransMixed, false},
		{"none", SchemeNone, false},
		{"", SchemeNone, false},
		{"bogus", SchemeNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyStepThenUndoRestoresPermutation(t *testing.T) {
	d, _ := buildCXLikeDiagram(t)
	before := d.Permutation()

	require.NoError(t, d.ApplyStep(Step{Level: 1, Scheme: SchemeSifting}))
	assert.NotEqual(t, before, d.Permutation())

	require.NoError(t, d.UndoLast())
	assert.Equal(t, before, d.Permutation())
	assert.Empty(t, d.Steps())
}

func TestRestoreToRoundTrip(t *testing.T) {
	d, _ := buildCXLikeDiagram(t)
	require.NoError(t, d.ApplyStep(Step{Level: 1, Scheme: SchemeSifting}))
	require.NoError(t, d.ApplyStep(Step{Level: 1, Scheme: SchemeSifting}))
	require.Len(t, d.Steps(), 2)

	require.NoError(t, d.RestoreTo(0))
	assert.Empty(t, d.Steps())
}

func TestReplayOrderMatchesLivePermutationAfterSifting(t *testing.T) {
	d, _ := buildCXLikeDiagram(t)
	require.NoError(t, d.ApplyStep(Step{Level: 1, Scheme: SchemeSifting}))
	assert.Equal(t, d.Permutation(), d.ReplayOrder())
}
