// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package semantics

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Parallel filtering configuration constants.
const (
	// parallelThreshold is the minimum candidate count to engage worker
	// goroutines. Small families are cheaper to check sequentially.
	parallelThreshold = 64

	// maxParallelWorkers caps worker goroutines regardless of CPU count.
	// The checks are memory-bound bitset scans; excess parallelism only
	// adds scheduling overhead.
	maxParallelWorkers = 8

	// parallelBatchSize is the number of candidates a worker claims per
	// counter increment.
	parallelBatchSize = 32
)

// filterParallel keeps the candidates satisfying pred, preserving input
// order.
//
// Candidates are independent, so above parallelThreshold the checks are
// distributed over up to maxParallelWorkers goroutines claiming batches
// from a shared atomic counter. Results land in a per-candidate flag
// slice, so merge order never affects output order. The predicate must
// only read the frame, which is immutable during a computation.
func (f *frame) filterParallel(ctx context.Context, cands []argset, pred func(argset) bool) ([]argset, error) {
	if len(cands) < parallelThreshold {
		out := make([]argset, 0, len(cands))
		for _, c := range cands {
			if pred(c) {
				out = append(out, c)
			}
		}
		return out, nil
	}

	workers := runtime.NumCPU()
	if workers > maxParallelWorkers {
		workers = maxParallelWorkers
	}

	keep := make([]bool, len(cands))
	var next int64

	grp, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		grp.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("candidate check cancelled: %w", err)
				}
				lo := int(atomic.AddInt64(&next, parallelBatchSize)) - parallelBatchSize
				if lo >= len(cands) {
					return nil
				}
				hi := lo + parallelBatchSize
				if hi > len(cands) {
					hi = len(cands)
				}
				for i := lo; i < hi; i++ {
					keep[i] = pred(cands[i])
				}
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	out := make([]argset, 0, len(cands))
	for i, c := range cands {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out, nil
}
