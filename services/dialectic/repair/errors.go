// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package repair searches for minimal sets of new defender arguments
// that make a target argument acceptable.
//
// A defender is a new, unattacked argument that attacks one or more
// existing attackers of the target. Defenders never attack each other
// and nothing attacks them, so {target} ∪ defenders is conflict-free
// and self-defending whenever every attacker of the target is covered;
// that set then extends to a preferred extension containing the target,
// which is the planner's correctness invariant for credulous goals.
//
// Plans are always verified: the planner re-runs the semantics engine
// on the augmented graph (explicit edges only, nothing re-inferred)
// before reporting success. Infeasibility and search exhaustion are
// normal, reportable outcomes carried in the Plan status, distinct from
// errors.
package repair

import "errors"

// Sentinel errors for repair planning. These indicate caller mistakes;
// infeasible and exhausted searches are Plan outcomes, not errors.
var (
	// ErrTargetNotFound is returned when the target argument is not in
	// the graph.
	ErrTargetNotFound = errors.New("target argument not in graph")

	// ErrInvalidGoal is returned for a goal with an unknown semantics
	// kind, an unknown mode, or an out-of-range coverage threshold.
	ErrInvalidGoal = errors.New("invalid repair goal")

	// ErrMinCoverageRequired is returned for a skeptical goal without an
	// explicit coverage threshold. There is no silent default.
	ErrMinCoverageRequired = errors.New("skeptical goal requires explicit min coverage")

	// ErrUnknownStrategy is returned for a strategy outside the closed
	// set {greedy, exact}.
	ErrUnknownStrategy = errors.New("unknown repair strategy")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid repair config")
)
