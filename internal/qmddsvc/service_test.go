// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmddsvc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalzilio-labs/qmddsift/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Table: config.TableConfig{BucketSize: 64},
		Optimize: config.OptimizeConfig{
			Scheme:       "lt-mixed",
			MaxRounds:    5,
			StableRounds: 2,
			Tolerance:    0,
		},
		Log: config.LogConfig{Level: "info", Format: "console"},
	}
}

func TestSubmitBuildsAndOptimizesAJob(t *testing.T) {
	svc := New(testConfig())
	job, err := svc.Submit(context.Background(), strings.NewReader("qubits 2\nH 0\nCNOT 0 1\n"))
	require.NoError(t, err)
	require.NoError(t, job.Err())

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, job.Scheme.String(), "ltrans-mixed")
	assert.Greater(t, job.SizeBefore(), 0)
}

func TestSubmitRejectsInvalidCircuit(t *testing.T) {
	svc := New(testConfig())
	_, err := svc.Submit(context.Background(), strings.NewReader("not a circuit"))
	assert.Error(t, err)
}

func TestGetRoundTrips(t *testing.T) {
	svc := New(testConfig())
	job, err := svc.Submit(context.Background(), strings.NewReader("qubits 1\nH 0\n"))
	require.NoError(t, err)

	got, ok := svc.Get(job.ID)
	require.True(t, ok)
	assert.Same(t, job, got)

	_, ok = svc.Get("does-not-exist")
	assert.False(t, ok)
}

func TestJobDotExportsNonEmptyGraph(t *testing.T) {
	svc := New(testConfig())
	job, err := svc.Submit(context.Background(), strings.NewReader("qubits 1\nH 0\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, job.Dot(&buf))
	assert.Contains(t, buf.String(), "digraph")
}
