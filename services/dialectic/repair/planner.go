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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/dialectica/services/dialectic/accept"
	"github.com/AleutianAI/dialectica/services/dialectic/af"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

// Goal describes the acceptance condition a plan must establish for the
// target argument.
type Goal struct {
	// Kind is the semantics the target must be accepted under.
	Kind semantics.Kind `json:"kind"`

	// Mode selects credulous or skeptical acceptance.
	Mode accept.Mode `json:"mode"`

	// MinCoverage is the minimum fraction of extensions that must
	// contain the target. Required for skeptical goals; ignored for
	// credulous ones.
	MinCoverage float64 `json:"min_coverage,omitempty"`
}

// Validate checks the goal for internal consistency.
func (g Goal) Validate() error {
	if !g.Kind.Valid() {
		return fmt.Errorf("%w: unknown semantics kind", ErrInvalidGoal)
	}
	switch g.Mode {
	case accept.ModeCredulous, accept.ModeSkeptical:
	default:
		return fmt.Errorf("%w: unknown acceptance mode", ErrInvalidGoal)
	}
	if g.MinCoverage < 0 || g.MinCoverage > 1 {
		return fmt.Errorf("%w: min_coverage %.3f outside [0,1]", ErrInvalidGoal, g.MinCoverage)
	}
	if g.Mode == accept.ModeSkeptical && g.MinCoverage == 0 {
		return ErrMinCoverageRequired
	}
	return nil
}

// satisfied reports whether the coverage meets the goal. An empty
// family never satisfies a goal: there is nothing for the target to be
// contained in.
func (g Goal) satisfied(cov accept.Coverage) bool {
	if cov.Total == 0 {
		return false
	}
	if g.Mode == accept.ModeCredulous {
		return cov.Contained > 0
	}
	return cov.Ratio >= g.MinCoverage
}

// Status classifies the outcome of a planning run.
type Status int

const (
	// StatusPlanned means a verified set of defenders was found.
	StatusPlanned Status = iota

	// StatusNoop means the goal already holds and Force was not set.
	StatusNoop

	// StatusInfeasible means no defender assignment within the budget
	// can satisfy the goal.
	StatusInfeasible

	// StatusExhausted means the search hit its iteration or time
	// limit before reaching a definitive answer.
	StatusExhausted
)

var statusNames = map[Status]string{
	StatusPlanned:    "planned",
	StatusNoop:       "noop",
	StatusInfeasible: "infeasible",
	StatusExhausted:  "exhausted",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Plan is the result of a planning run. Status distinguishes success
// from the non-error outcomes; Augmented is nil unless Status is
// StatusPlanned or StatusNoop.
type Plan struct {
	Status    Status          `json:"status"`
	Reason    string          `json:"reason,omitempty"`
	Target    string          `json:"target"`
	Goal      Goal            `json:"goal"`
	Defenders []af.Defender   `json:"defenders,omitempty"`
	Before    accept.Coverage `json:"before"`
	After     accept.Coverage `json:"after"`

	// Augmented is the graph with the plan's defenders applied.
	Augmented *af.Graph `json:"-"`
}

// Planner searches for defender assignments that establish an
// acceptance goal for a target argument.
//
// Thread Safety: Safe for concurrent use; each Plan call carries its
// own budget and scratch state.
type Planner struct {
	cfg Config
	log *slog.Logger
}

// NewPlanner creates a planner with a validated configuration. A nil
// logger falls back to slog.Default.
func NewPlanner(cfg Config, log *slog.Logger) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Planner{cfg: cfg, log: log}, nil
}

// Plan searches for defenders that make target meet goal on g.
//
// Description:
//
//	Computes the target's current coverage, short-circuits to a no-op
//	when the goal already holds, and otherwise dispatches to the
//	configured strategy. Every candidate assignment is verified by
//	recomputing the semantics on the augmented graph before it is
//	returned. Infeasibility and budget exhaustion are reported in the
//	Plan's Status, not as errors.
//
// Inputs:
//   - ctx: cancellation scope for the underlying semantics runs.
//   - g: the graph to repair. Never modified.
//   - target: argument whose acceptance the plan must establish.
//   - goal: the acceptance condition to reach.
//
// Outputs:
//   - *Plan: the outcome, always non-nil on nil error.
//   - error: ErrTargetNotFound, goal validation errors, or a semantics
//     failure.
func (p *Planner) Plan(ctx context.Context, g *af.Graph, target string, goal Goal) (*Plan, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "repair.Plan",
		trace.WithAttributes(
			attribute.String("repair.target", target),
			attribute.String("repair.kind", goal.Kind.String()),
			attribute.String("repair.strategy", string(p.cfg.Strategy)),
		))
	defer span.End()

	if g == nil {
		return nil, semantics.ErrNilGraph
	}
	if !g.Contains(target) {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	before, err := p.coverage(ctx, g, target, goal)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Target: target, Goal: goal, Before: before}
	defer func() { recordPlan(ctx, plan.Status, p.cfg.Strategy, start) }()

	if goal.satisfied(before) && !p.cfg.Force {
		plan.Status = StatusNoop
		plan.After = before
		plan.Augmented = g
		return plan, nil
	}

	if g.IsSelfAttacking(target) {
		plan.Status = StatusInfeasible
		plan.Reason = fmt.Sprintf("self-attack: no admissible set can contain %s", target)
		plan.After = before
		return plan, nil
	}

	blockers, err := p.blockers(ctx, g, target)
	if err != nil {
		return nil, err
	}
	if len(blockers) == 0 {
		plan.Status = StatusInfeasible
		plan.Reason = fmt.Sprintf("no attackers of %s can be countered to satisfy the goal", target)
		plan.After = before
		return plan, nil
	}

	budget := NewSearchBudget(p.cfg.MaxIterations, p.cfg.TimeLimit)

	var defenders []af.Defender
	var reason string
	switch p.cfg.Strategy {
	case StrategyGreedy:
		defenders, reason = p.greedy(g, blockers)
	case StrategyExact:
		defenders, reason, err = p.exact(ctx, g, target, goal, blockers, budget)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, p.cfg.Strategy)
	}

	if defenders == nil {
		plan.After = before
		if reason == "" && budget.Exhausted() {
			plan.Status = StatusExhausted
			plan.Reason = fmt.Sprintf("search stopped by %s after %d iteration(s)",
				budget.ExhaustedBy(), budget.Iterations())
			return plan, nil
		}
		plan.Status = StatusInfeasible
		plan.Reason = reason
		return plan, nil
	}

	augmented, err := g.WithDefenders(defenders)
	if err != nil {
		return nil, err
	}
	after, err := p.coverage(ctx, augmented, target, goal)
	if err != nil {
		return nil, err
	}
	plan.After = after

	if !goal.satisfied(after) {
		plan.Status = StatusInfeasible
		plan.Reason = fmt.Sprintf("verification failed: goal not met after adding %d defender(s)", len(defenders))
		return plan, nil
	}

	plan.Status = StatusPlanned
	plan.Defenders = defenders
	plan.Augmented = augmented
	p.log.DebugContext(ctx, "repair plan verified",
		"target", target,
		"defenders", len(defenders),
		"coverage", after.Ratio)
	return plan, nil
}

func (p *Planner) coverage(ctx context.Context, g *af.Graph, target string, goal Goal) (accept.Coverage, error) {
	family, err := semantics.Compute(ctx, g, goal.Kind)
	if err != nil {
		return accept.Coverage{}, err
	}
	return accept.Cover(family, target), nil
}

// blockers returns the attackers of target that the grounded extension
// does not already counter, in graph index order. Self-attacking
// attackers still block: they cannot join an admissible set, but an
// admissible set containing target must attack them all the same.
func (p *Planner) blockers(ctx context.Context, g *af.Graph, target string) ([]string, error) {
	family, err := semantics.Compute(ctx, g, semantics.KindGrounded)
	if err != nil {
		return nil, err
	}
	grounded := family.Extensions[0]

	var out []string
	for _, attacker := range g.AttackersOf(target) {
		countered := false
		for _, counter := range g.AttackersOf(attacker) {
			if grounded.Contains(counter) {
				countered = true
				break
			}
		}
		if !countered {
			out = append(out, attacker)
		}
	}
	return out, nil
}
