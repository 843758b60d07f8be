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
	"context"
	"fmt"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
)

// exact searches blocker subsets in increasing size, verifying each
// candidate assignment against the full semantics. It finds plans the
// greedy strategy misses when some blockers are already countered by
// arguments that can join an extension, and it returns the assignment
// with the fewest defenders overall.
//
// When the budget runs out before a verified assignment is found, it
// returns nil defenders with no reason; the caller reads the budget to
// report StatusExhausted. A nil result with a reason means the search
// space was covered and no assignment works.
func (p *Planner) exact(ctx context.Context, g *af.Graph, target string, goal Goal, blockers []string, budget *SearchBudget) ([]af.Defender, string, error) {
	for size := 1; size <= len(blockers); size++ {
		// Defender count grows with subset size, so a size that
		// already overruns the budget ends the search.
		if numGroups(size, p.cfg.Fanout) > p.cfg.Budget {
			return nil, fmt.Sprintf("no defender assignment within budget k=%d satisfies the goal", p.cfg.Budget), nil
		}

		found, defenders, err := p.trySubsets(ctx, g, target, goal, blockers, size, budget)
		if err != nil {
			return nil, "", err
		}
		if found {
			return defenders, "", nil
		}
		if budget.Exhausted() {
			return nil, "", nil
		}
	}
	return nil, fmt.Sprintf("no defender assignment within budget k=%d satisfies the goal", p.cfg.Budget), nil
}

// trySubsets verifies every size-k subset of blockers, in
// lexicographic order over the input slice.
func (p *Planner) trySubsets(ctx context.Context, g *af.Graph, target string, goal Goal, blockers []string, size int, budget *SearchBudget) (bool, []af.Defender, error) {
	subset := make([]string, 0, size)

	var walk func(start int) (bool, []af.Defender, error)
	walk = func(start int) (bool, []af.Defender, error) {
		if len(subset) == size {
			budget.RecordIteration()
			if budget.Exhausted() {
				return false, nil, nil
			}
			if err := ctx.Err(); err != nil {
				return false, nil, err
			}
			return p.verifySubset(ctx, g, target, goal, subset)
		}
		for i := start; i <= len(blockers)-(size-len(subset)); i++ {
			subset = append(subset, blockers[i])
			found, defenders, err := walk(i + 1)
			subset = subset[:len(subset)-1]
			if err != nil || found {
				return found, defenders, err
			}
			if budget.Exhausted() {
				return false, nil, nil
			}
		}
		return false, nil, nil
	}

	return walk(0)
}

// verifySubset builds defenders for the chosen blockers, applies them,
// and checks the goal on the augmented graph.
func (p *Planner) verifySubset(ctx context.Context, g *af.Graph, target string, goal Goal, chosen []string) (bool, []af.Defender, error) {
	groups := groupBlockers(chosen, p.cfg.Fanout)
	names := defenderNames(g, p.cfg.DefenderPrefix, len(groups))
	defenders := make([]af.Defender, len(groups))
	for i, group := range groups {
		defenders[i] = af.Defender{ID: names[i], Targets: group}
	}

	augmented, err := g.WithDefenders(defenders)
	if err != nil {
		return false, nil, err
	}
	cov, err := p.coverage(ctx, augmented, target, goal)
	if err != nil {
		return false, nil, err
	}
	if !goal.satisfied(cov) {
		return false, nil, nil
	}
	return true, defenders, nil
}

// numGroups is the defender count for covering n blockers at the given
// fanout.
func numGroups(n, fanout int) int {
	if n == 0 {
		return 0
	}
	if fanout <= 0 {
		return 1
	}
	return (n + fanout - 1) / fanout
}
