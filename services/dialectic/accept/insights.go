// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package accept

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

// ErrTargetNotFound is returned when an insight query names an argument
// the graph does not declare.
var ErrTargetNotFound = errors.New("target argument not in graph")

// Insights explains why a target is or is not accepted.
type Insights struct {
	// Target is the argument the insights are about.
	Target string `json:"target"`

	// GroundedRoadblocks are the attackers of the target that nothing in
	// the grounded extension defeats. These are what keep the target out
	// of the skeptical core.
	GroundedRoadblocks []string `json:"grounded_roadblocks"`

	// PersistentAttackers appear in every preferred extension: they
	// block the target in every stance.
	PersistentAttackers []string `json:"persistent_attackers"`

	// SoftAttackers appear in some preferred extensions but not all:
	// they block the target in some stances and are defeated in others.
	SoftAttackers []string `json:"soft_attackers"`

	// DefenseDepth is the target's depth in the grounded fixed point,
	// or 0 if the target never enters it.
	DefenseDepth int `json:"defense_depth"`
}

// Analyze derives insights for a target from the grounded and preferred
// families.
//
// Inputs:
//   - g: The graph the families were computed from.
//   - grounded: Family of semantics.KindGrounded.
//   - preferred: Family of semantics.KindPreferred.
//   - target: Argument to explain.
//
// Outputs:
//   - *Insights: Roadblocks and attacker classification, attacker lists
//     in graph index order.
//   - error: ErrTargetNotFound, or a mismatch error when a family of the
//     wrong kind is passed.
func Analyze(g *af.Graph, grounded, preferred *semantics.Family, target string) (*Insights, error) {
	if !g.Contains(target) {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}
	if grounded.Kind != semantics.KindGrounded {
		return nil, fmt.Errorf("expected grounded family, got %v", grounded.Kind)
	}
	if preferred.Kind != semantics.KindPreferred {
		return nil, fmt.Errorf("expected preferred family, got %v", preferred.Kind)
	}

	ins := &Insights{
		Target:              target,
		GroundedRoadblocks:  []string{},
		PersistentAttackers: []string{},
		SoftAttackers:       []string{},
		DefenseDepth:        grounded.DefenseDepth[target],
	}

	groundedExt := grounded.Extensions[0]
	for _, attacker := range g.AttackersOf(target) {
		if !extensionAttacks(g, groundedExt, attacker) {
			ins.GroundedRoadblocks = append(ins.GroundedRoadblocks, attacker)
		}

		appearances := 0
		for _, pe := range preferred.Extensions {
			if pe.Contains(attacker) {
				appearances++
			}
		}
		switch {
		case len(preferred.Extensions) > 0 && appearances == len(preferred.Extensions):
			ins.PersistentAttackers = append(ins.PersistentAttackers, attacker)
		case appearances > 0:
			ins.SoftAttackers = append(ins.SoftAttackers, attacker)
		}
	}

	return ins, nil
}

// extensionAttacks reports whether some member of ext attacks the given
// argument.
func extensionAttacks(g *af.Graph, ext semantics.Extension, target string) bool {
	for _, attacker := range g.AttackersOf(target) {
		if ext.Contains(attacker) {
			return true
		}
	}
	return false
}
