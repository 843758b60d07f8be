// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import "github.com/AleutianAI/dialectica/services/dialectic/accept"

// ServiceVersion is the dialectic service version.
const ServiceVersion = "0.1.0"

// AttackSpec is one directed attack edge in a request graph.
type AttackSpec struct {
	// From is the attacking argument.
	From string `json:"from" binding:"required"`

	// To is the attacked argument.
	To string `json:"to" binding:"required"`
}

// GraphSpec is the wire form of an argumentation graph. Arguments must
// be declared explicitly; attacks may only reference declared
// arguments.
type GraphSpec struct {
	// Arguments lists every argument identifier.
	Arguments []string `json:"arguments" binding:"required"`

	// Attacks lists the directed attack edges.
	Attacks []AttackSpec `json:"attacks"`
}

// ComputeRequest asks for extension families of a graph.
type ComputeRequest struct {
	Graph GraphSpec `json:"graph" binding:"required"`

	// Semantics names the kinds to compute. Empty means all kinds.
	Semantics []string `json:"semantics"`
}

// FamilyResult is one computed extension family.
type FamilyResult struct {
	Kind       string     `json:"kind"`
	Extensions [][]string `json:"extensions"`

	// DefenseDepth is present for grounded semantics only.
	DefenseDepth map[string]int `json:"defense_depth,omitempty"`
}

// ComputeResponse carries the computed families.
type ComputeResponse struct {
	RequestID    string         `json:"request_id"`
	NumArguments int            `json:"num_arguments"`
	Families     []FamilyResult `json:"families"`
}

// QueryRequest asks whether an argument is accepted under a semantics.
type QueryRequest struct {
	Graph  GraphSpec `json:"graph" binding:"required"`
	Target string    `json:"target" binding:"required"`

	// Semantics is a single kind name, e.g. "preferred".
	Semantics string `json:"semantics" binding:"required"`

	// Mode is "credulous" or "skeptical".
	Mode string `json:"mode" binding:"required"`

	// MinCoverage optionally sets a coverage threshold to check.
	MinCoverage float64 `json:"min_coverage,omitempty"`
}

// QueryResponse carries the acceptance verdict and coverage.
type QueryResponse struct {
	RequestID string          `json:"request_id"`
	Target    string          `json:"target"`
	Semantics string          `json:"semantics"`
	Mode      string          `json:"mode"`
	Accepted  bool            `json:"accepted"`
	Coverage  accept.Coverage `json:"coverage"`

	// CoverageMet is present when the request set min_coverage.
	CoverageMet *bool `json:"coverage_met,omitempty"`
}

// InsightsRequest asks for a diagnostic breakdown of a target's
// standing.
type InsightsRequest struct {
	Graph  GraphSpec `json:"graph" binding:"required"`
	Target string    `json:"target" binding:"required"`
}

// InsightsResponse carries the target's acceptance diagnostics.
type InsightsResponse struct {
	RequestID string          `json:"request_id"`
	Insights  accept.Insights `json:"insights"`
}

// GoalSpec is the wire form of a repair goal.
type GoalSpec struct {
	Semantics string `json:"semantics" binding:"required"`
	Mode      string `json:"mode" binding:"required"`

	MinCoverage float64 `json:"min_coverage,omitempty"`
}

// RepairRequest asks for a defender plan establishing a goal. Budget,
// fanout, and strategy fall back to the service defaults when omitted.
type RepairRequest struct {
	Graph  GraphSpec `json:"graph" binding:"required"`
	Target string    `json:"target" binding:"required"`
	Goal   GoalSpec  `json:"goal" binding:"required"`

	Budget   *int   `json:"budget,omitempty"`
	Fanout   *int   `json:"fanout,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Force    bool   `json:"force,omitempty"`
}

// DefenderSpec is one planned defender argument.
type DefenderSpec struct {
	ID      string   `json:"id"`
	Targets []string `json:"targets"`
}

// RepairResponse carries the planning outcome. Infeasible and
// exhausted searches are successful responses distinguished by Status.
type RepairResponse struct {
	RequestID string          `json:"request_id"`
	Status    string          `json:"status"`
	Reason    string          `json:"reason,omitempty"`
	Target    string          `json:"target"`
	Defenders []DefenderSpec  `json:"defenders,omitempty"`
	Before    accept.Coverage `json:"before"`
	After     accept.Coverage `json:"after"`

	// Augmented is the repaired graph, present for planned and noop
	// outcomes.
	Augmented *GraphSpec `json:"augmented,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}
