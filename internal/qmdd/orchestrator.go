// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/rs/zerolog/log"

// OptimizeConfig controls Optimize's outer fixed-point loop.
type OptimizeConfig struct {
	// MaxRounds bounds the total number of sifting passes attempted.
	MaxRounds int
	// StableRounds is how many consecutive rounds whose size change falls
	// within Tolerance of the current best are needed before the loop
	// concludes it has converged.
	StableRounds int
	// Tolerance is the largest |newSize - curSize| still considered "no
	// further progress" for the StableRounds count.
	Tolerance int
}

// DefaultOptimizeConfig mirrors the constants apps/main.cpp's driver loop
// used: up to 100 rounds, 10 consecutive near-identical rounds to stop early,
// a tolerance window of 10 nodes.
func DefaultOptimizeConfig() OptimizeConfig {
	return OptimizeConfig{MaxRounds: 100, StableRounds: 10, Tolerance: 10}
}

// Optimize completes the diagram rooted at root (inserting identity stubs
// wherever an edge skips levels) and then repeatedly sifts it, under the
// requested scheme, until the size stops improving meaningfully or
// cfg.MaxRounds is reached. It returns the final diagram size.
//
// Grounded in apps/main.cpp's driver around VarOrder/reorderSelect, whose
// stopping test was `abs(cycleSize - curSize <= 10)`: the comparison sits
// inside the abs call, so the original test is really
// `abs((cycleSize - curSize) <= 10)`, the absolute value of 0 or 1, which is
// not the size-stability check the comment around it describes. This version
// takes the absolute value of the difference and then compares it with
// cfg.Tolerance.
func (d *Diagram) Optimize(root int32, scheme Scheme, cfg OptimizeConfig) (int, error) {
	if err := d.CompleteSkipped(root); err != nil {
		return 0, err
	}

	curSize := d.Size()
	stable := 0
	for round := 0; round < cfg.MaxRounds; round++ {
		if err := d.Sift(scheme); err != nil {
			return 0, err
		}
		cycleSize := d.Size()
		log.Debug().Int("round", round).Int("size", cycleSize).Msg("qmdd: sifting round complete")

		diff := cycleSize - curSize
		if diff < 0 {
			diff = -diff
		}
		if diff <= cfg.Tolerance {
			stable++
			if stable >= cfg.StableRounds {
				break
			}
		} else {
			stable = 0
		}
		if cycleSize < curSize {
			curSize = cycleSize
		}
	}
	return d.Size(), nil
}
