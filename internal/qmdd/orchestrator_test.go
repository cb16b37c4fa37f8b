// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptimizeConfig(t *testing.T) {
	cfg := DefaultOptimizeConfig()
	assert.Equal(t, 100, cfg.MaxRounds)
	assert.Equal(t, 10, cfg.StableRounds)
	assert.Equal(t, 10, cfg.Tolerance)
}

func TestOptimizeTerminatesAndPreservesCheckableInvariants(t *testing.T) {
	d, root := buildCXLikeDiagram(t)
	cfg := OptimizeConfig{MaxRounds: 5, StableRounds: 2, Tolerance: 0}

	size, err := d.Optimize(root, SchemeLTransMixed, cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, size, 0)
	assert.True(t, d.CheckRefcounts())
	assert.True(t, d.CheckNoOrphans(root))
}

func TestSiftDoesNotOrphanReachableNodes(t *testing.T) {
	d, root := buildCXLikeDiagram(t)
	require.NoError(t, d.Sift(SchemeSifting))
	assert.True(t, d.CheckNoOrphans(root))
}
