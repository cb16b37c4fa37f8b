// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package qmddsvc wraps circuit construction and reordering into named jobs
// shared by the CLI and the HTTP surface, the way kegliz-qplay's server
// package wraps a router and a logger behind one small facade.
package qmddsvc

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dalzilio-labs/qmddsift/internal/circuit"
	"github.com/dalzilio-labs/qmddsift/internal/cnum"
	"github.com/dalzilio-labs/qmddsift/internal/config"
	"github.com/dalzilio-labs/qmddsift/internal/qmdd"
)

// Job is one circuit's construction-and-reordering run.
type Job struct {
	ID        string
	Scheme    qmdd.Scheme
	CreatedAt time.Time

	mu       sync.Mutex
	diagram  *qmdd.Diagram
	root     int32
	weight   cnum.Handle
	sizeInit int
	sizeOpt  int
	err      error
}

// SizeBefore returns the diagram's node count right after construction.
func (j *Job) SizeBefore() int { j.mu.Lock(); defer j.mu.Unlock(); return j.sizeInit }

// SizeAfter returns the diagram's node count after the reordering pass.
func (j *Job) SizeAfter() int { j.mu.Lock(); defer j.mu.Unlock(); return j.sizeOpt }

// Err returns the error recorded while running the job, if any.
func (j *Job) Err() error { j.mu.Lock(); defer j.mu.Unlock(); return j.err }

// PrintOrder renders the diagram's current qubit order and, on a second
// line, the order rebuilt by replaying the step log from the initial layout,
// with qubits named "x" as in the original tool's printOrder output.
func (j *Job) PrintOrder() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.diagram == nil {
		return ""
	}
	return j.diagram.PrintOrder("x")
}

// Dot exports the current diagram in Graphviz dot format.
func (j *Job) Dot(w io.Writer) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.diagram == nil {
		return fmt.Errorf("qmddsvc: job %s has no diagram", j.ID)
	}
	return j.diagram.WriteDot(w, j.root, j.weight)
}

// Service runs circuit-to-diagram jobs under a shared configuration, keeping
// finished jobs addressable by id the way an HTTP handler needs.
type Service struct {
	cfg config.Config

	mu   sync.RWMutex
	jobs map[string]*Job
}

// New creates a Service bound to cfg.
func New(cfg config.Config) *Service {
	return &Service{cfg: cfg, jobs: make(map[string]*Job)}
}

// Submit parses a circuit from src, builds its functionality diagram and
// runs the configured reordering scheme on it, recording the result under a
// fresh job id. The diagram itself is built and optimized synchronously.
// ctx is accepted for interface symmetry with the HTTP handlers but is not
// consulted: a submitted job always runs to completion.
func (s *Service) Submit(ctx context.Context, src io.Reader) (*Job, error) {
	c, err := circuit.Parse(src)
	if err != nil {
		return nil, err
	}

	scheme, err := qmdd.ParseScheme(s.cfg.Optimize.Scheme)
	if err != nil {
		return nil, err
	}

	weights := cnum.New(cnum.DefaultTolerance)
	var opts []func(*qmdd.Configs)
	if s.cfg.Table.NodeSize > 0 {
		opts = append(opts, qmdd.Nodesize(s.cfg.Table.NodeSize))
	}
	if s.cfg.Table.BucketSize > 0 {
		opts = append(opts, qmdd.Bucketsize(s.cfg.Table.BucketSize))
	}
	if s.cfg.Table.MaxNodeSize > 0 {
		opts = append(opts, qmdd.Maxnodesize(s.cfg.Table.MaxNodeSize))
	}
	if s.cfg.Table.MaxNodeIncrease > 0 {
		opts = append(opts, qmdd.Maxnodeincrease(s.cfg.Table.MaxNodeIncrease))
	}

	d, err := qmdd.NewDiagram(c.NumQubits, weights, opts...)
	if err != nil {
		return nil, fmt.Errorf("qmddsvc: %w", err)
	}

	root, weight, err := circuit.Build(d, c)
	if err != nil {
		return nil, fmt.Errorf("qmddsvc: %w", err)
	}
	d.Table().IncRef(root)

	job := &Job{
		ID:        uuid.NewString(),
		Scheme:    scheme,
		CreatedAt: time.Now(),
		diagram:   d,
		root:      root,
		weight:    weight,
		sizeInit:  d.Size(),
	}

	if scheme != qmdd.SchemeNone {
		optCfg := qmdd.OptimizeConfig{
			MaxRounds:    s.cfg.Optimize.MaxRounds,
			StableRounds: s.cfg.Optimize.StableRounds,
			Tolerance:    s.cfg.Optimize.Tolerance,
		}
		size, err := d.Optimize(root, scheme, optCfg)
		if err != nil {
			job.err = err
		} else {
			job.sizeOpt = size
		}
	} else {
		job.sizeOpt = job.sizeInit
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return job, nil
}

// Get retrieves a previously submitted job by id.
func (s *Service) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}
