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
	"fmt"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
)

// greedy covers every blocker, grouping them per the fanout setting.
// It returns nil defenders and a reason when the grouping needs more
// defenders than the budget allows.
func (p *Planner) greedy(g *af.Graph, blockers []string) ([]af.Defender, string) {
	groups := groupBlockers(blockers, p.cfg.Fanout)
	if len(groups) > p.cfg.Budget {
		return nil, fmt.Sprintf("budget exhausted: %d blockers require at least %d group(s) but k=%d",
			len(blockers), len(groups), p.cfg.Budget)
	}
	names := defenderNames(g, p.cfg.DefenderPrefix, len(groups))
	defenders := make([]af.Defender, len(groups))
	for i, group := range groups {
		defenders[i] = af.Defender{ID: names[i], Targets: group}
	}
	return defenders, ""
}

// groupBlockers partitions blockers into defender target lists. A
// fanout of 0 assigns all blockers to one defender; otherwise each
// defender takes at most fanout blockers, in order.
func groupBlockers(blockers []string, fanout int) [][]string {
	if len(blockers) == 0 {
		return nil
	}
	if fanout <= 0 {
		group := make([]string, len(blockers))
		copy(group, blockers)
		return [][]string{group}
	}
	var groups [][]string
	for start := 0; start < len(blockers); start += fanout {
		end := start + fanout
		if end > len(blockers) {
			end = len(blockers)
		}
		group := make([]string, end-start)
		copy(group, blockers[start:end])
		groups = append(groups, group)
	}
	return groups
}

// defenderNames generates count fresh argument IDs with the given
// prefix, skipping any that already exist in g.
func defenderNames(g *af.Graph, prefix string, count int) []string {
	names := make([]string, 0, count)
	for seq := 1; len(names) < count; seq++ {
		name := fmt.Sprintf("%s%d", prefix, seq)
		if g.Contains(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}
