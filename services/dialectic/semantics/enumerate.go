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
)

// Enumeration limits.
const (
	// DefaultMaxCandidates caps the number of conflict-free candidate
	// sets generated during one computation. Hitting the cap fails the
	// whole request with ErrEnumerationLimit; no partial family is
	// returned.
	DefaultMaxCandidates = 1 << 20

	// cancelCheckInterval controls how often the enumeration DFS polls
	// the context for cancellation.
	cancelCheckInterval = 1024
)

// enumerateConflictFree generates every conflict-free superset of base
// obtainable by adding candidates, base included.
//
// Candidates must be index-ascending and already exclude base members,
// arguments in conflict with base, and self-attackers. The DFS branches
// on each remaining candidate and prunes a branch as soon as adding the
// argument would create an internal attack, so fully conflicting graphs
// cost far less than 2^n.
//
// Sets are emitted in lexicographic order of their index sequences,
// which makes downstream family output deterministic without sorting.
func (f *frame) enumerateConflictFree(ctx context.Context, base argset, candidates []int) ([]argset, error) {
	results := []argset{base.clone()}
	cur := base.clone()
	visited := 0

	var walk func(pos int) error
	walk = func(pos int) error {
		visited++
		if visited%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("enumeration cancelled: %w", err)
			}
		}
		for p := pos; p < len(candidates); p++ {
			i := candidates[p]
			if f.selfAtk.has(i) || f.targets[i].intersects(cur) || f.attackers[i].intersects(cur) {
				continue
			}
			cur.add(i)
			if len(results) >= DefaultMaxCandidates {
				cur.remove(i)
				return fmt.Errorf("%w: more than %d conflict-free candidates",
					ErrEnumerationLimit, DefaultMaxCandidates)
			}
			results = append(results, cur.clone())
			if err := walk(p + 1); err != nil {
				cur.remove(i)
				return err
			}
			cur.remove(i)
		}
		return nil
	}

	if err := walk(0); err != nil {
		return nil, err
	}
	return results, nil
}

// freeArguments returns the indices that can still join a conflict-free
// superset of base: not already in base, not attacked by base, not
// attacking base, and not self-attacking.
func (f *frame) freeArguments(base argset) []int {
	attacked := f.attackedBy(base)
	var out []int
	for i := 0; i < f.n; i++ {
		if base.has(i) || attacked.has(i) || f.selfAtk.has(i) {
			continue
		}
		if f.targets[i].intersects(base) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// allCandidates returns every non-self-attacking index. Used for the
// kinds whose extensions need not contain the grounded extension
// (conflict-free, admissible, stage).
func (f *frame) allCandidates() []int {
	var out []int
	for i := 0; i < f.n; i++ {
		if !f.selfAtk.has(i) {
			out = append(out, i)
		}
	}
	return out
}

// maximalBySubset keeps the sets that are not proper subsets of another
// candidate, preserving input order.
func maximalBySubset(cands []argset) []argset {
	out := make([]argset, 0, len(cands))
	for i, c := range cands {
		dominated := false
		for j, o := range cands {
			if i != j && c.properSubsetOf(o) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out
}

// maximalByRange keeps the sets whose range is not a proper subset of
// another candidate's range, preserving input order. Distinct sets with
// equal ranges are all range-maximal and all kept.
func (f *frame) maximalByRange(cands []argset) []argset {
	ranges := make([]argset, len(cands))
	for i, c := range cands {
		ranges[i] = f.rangeOf(c)
	}
	out := make([]argset, 0, len(cands))
	for i, c := range cands {
		dominated := false
		for j := range cands {
			if i != j && ranges[i].properSubsetOf(ranges[j]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out
}
