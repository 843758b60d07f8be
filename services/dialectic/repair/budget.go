// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package repair

import (
	"sync"
	"sync/atomic"
	"time"
)

// SearchBudget tracks resource consumption during a planning run. When
// a limit is hit before the search reaches a definitive answer, the
// planner reports StatusExhausted rather than hanging.
//
// Thread Safety: Safe for concurrent use.
type SearchBudget struct {
	maxIterations int64
	timeLimit     time.Duration
	startTime     time.Time

	iterations int64

	mu          sync.Mutex
	exhausted   bool
	exhaustedBy string
}

// NewSearchBudget creates a budget tracker, starting its clock now.
func NewSearchBudget(maxIterations int, timeLimit time.Duration) *SearchBudget {
	return &SearchBudget{
		maxIterations: int64(maxIterations),
		timeLimit:     timeLimit,
		startTime:     time.Now(),
	}
}

// RecordIteration records one unit of search work and returns the new
// total.
func (b *SearchBudget) RecordIteration() int64 {
	return atomic.AddInt64(&b.iterations, 1)
}

// Iterations returns the number of iterations recorded so far.
func (b *SearchBudget) Iterations() int64 {
	return atomic.LoadInt64(&b.iterations)
}

// Elapsed returns wall-clock time since the budget was created.
func (b *SearchBudget) Elapsed() time.Duration {
	return time.Since(b.startTime)
}

// Exhausted reports whether any limit has been hit. Once true, it stays
// true.
func (b *SearchBudget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.exhausted {
		return true
	}
	if b.maxIterations > 0 && atomic.LoadInt64(&b.iterations) >= b.maxIterations {
		b.exhausted = true
		b.exhaustedBy = "iteration limit"
	} else if b.timeLimit > 0 && time.Since(b.startTime) >= b.timeLimit {
		b.exhausted = true
		b.exhaustedBy = "time limit"
	}
	return b.exhausted
}

// ExhaustedBy names the limit that was hit, or "" if none.
func (b *SearchBudget) ExhaustedBy() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exhaustedBy
}
