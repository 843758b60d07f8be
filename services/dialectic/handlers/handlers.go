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

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/dialectica/services/dialectic/accept"
	"github.com/AleutianAI/dialectica/services/dialectic/af"
	"github.com/AleutianAI/dialectica/services/dialectic/repair"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

// Handlers contains the HTTP handlers for the dialectic service.
type Handlers struct {
	repairCfg repair.Config
}

// NewHandlers creates handlers using the given repair defaults.
// Per-request budget, fanout, and strategy override them.
func NewHandlers(repairCfg repair.Config) *Handlers {
	return &Handlers{repairCfg: repairCfg}
}

// HandleCompute handles POST /v1/dialectic/compute.
//
// Description:
//
//	Computes extension families for the requested semantics kinds, or
//	for every kind when none are named.
//
// Request Body:
//
//	ComputeRequest
//
// Response:
//
//	200 OK: ComputeResponse
//	400 Bad Request: Malformed graph or unknown semantics
//	422 Unprocessable Entity: Enumeration limit exceeded
func (h *Handlers) HandleCompute(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCompute")

	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	g, ok := h.buildGraph(c, logger, req.Graph)
	if !ok {
		return
	}

	kinds, err := parseKinds(req.Semantics)
	if err != nil {
		logger.Warn("Unknown semantics kind", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_SEMANTICS",
		})
		return
	}

	resp := ComputeResponse{
		RequestID:    requestID,
		NumArguments: g.NumArguments(),
	}
	for _, kind := range kinds {
		family, err := semantics.Compute(c.Request.Context(), g, kind)
		if err != nil {
			h.writeComputeError(c, logger, err)
			return
		}
		result := FamilyResult{
			Kind:         kind.String(),
			Extensions:   make([][]string, len(family.Extensions)),
			DefenseDepth: family.DefenseDepth,
		}
		for i, ext := range family.Extensions {
			result.Extensions[i] = []string(ext)
		}
		resp.Families = append(resp.Families, result)
	}

	logger.Info("Computed families",
		"num_arguments", resp.NumArguments,
		"kinds", len(kinds))
	c.JSON(http.StatusOK, resp)
}

// HandleQuery handles POST /v1/dialectic/query.
//
// Description:
//
//	Decides credulous or skeptical acceptance of a target argument
//	under one semantics, with extension coverage.
//
// Request Body:
//
//	QueryRequest
//
// Response:
//
//	200 OK: QueryResponse
//	400 Bad Request: Malformed graph, unknown kind/mode, or missing target
//	422 Unprocessable Entity: Enumeration limit exceeded
func (h *Handlers) HandleQuery(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleQuery")

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	g, ok := h.buildGraph(c, logger, req.Graph)
	if !ok {
		return
	}
	if !g.Contains(req.Target) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "target argument not in graph",
			Code:  "TARGET_NOT_FOUND",
		})
		return
	}

	kind, err := semantics.ParseKind(req.Semantics)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_SEMANTICS",
		})
		return
	}
	mode, ok := accept.ParseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "mode must be credulous or skeptical",
			Code:  "UNKNOWN_MODE",
		})
		return
	}
	if req.MinCoverage < 0 || req.MinCoverage > 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "min_coverage must be in [0,1]",
			Code:  "INVALID_COVERAGE",
		})
		return
	}

	family, err := semantics.Compute(c.Request.Context(), g, kind)
	if err != nil {
		h.writeComputeError(c, logger, err)
		return
	}

	cov := accept.Cover(family, req.Target)
	resp := QueryResponse{
		RequestID: requestID,
		Target:    req.Target,
		Semantics: kind.String(),
		Mode:      mode.String(),
		Accepted:  accept.Accepted(family, req.Target, mode),
		Coverage:  cov,
	}
	if req.MinCoverage > 0 {
		met := cov.Total > 0 && cov.Ratio >= req.MinCoverage
		resp.CoverageMet = &met
	}

	logger.Info("Acceptance decided",
		"target", req.Target,
		"kind", kind.String(),
		"mode", mode.String(),
		"accepted", resp.Accepted)
	c.JSON(http.StatusOK, resp)
}

// HandleInsights handles POST /v1/dialectic/insights.
//
// Description:
//
//	Explains a target's standing: grounded roadblocks, persistent and
//	soft attackers across preferred extensions, and defense depth.
//
// Request Body:
//
//	InsightsRequest
//
// Response:
//
//	200 OK: InsightsResponse
//	400 Bad Request: Malformed graph or missing target
//	422 Unprocessable Entity: Enumeration limit exceeded
func (h *Handlers) HandleInsights(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleInsights")

	var req InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	g, ok := h.buildGraph(c, logger, req.Graph)
	if !ok {
		return
	}

	grounded, err := semantics.Compute(c.Request.Context(), g, semantics.KindGrounded)
	if err != nil {
		h.writeComputeError(c, logger, err)
		return
	}
	preferred, err := semantics.Compute(c.Request.Context(), g, semantics.KindPreferred)
	if err != nil {
		h.writeComputeError(c, logger, err)
		return
	}

	insights, err := accept.Analyze(g, grounded, preferred, req.Target)
	if err != nil {
		if errors.Is(err, accept.ErrTargetNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "TARGET_NOT_FOUND",
			})
			return
		}
		logger.Error("Insights failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "INSIGHTS_FAILED",
		})
		return
	}

	logger.Info("Insights computed",
		"target", req.Target,
		"roadblocks", len(insights.GroundedRoadblocks))
	c.JSON(http.StatusOK, InsightsResponse{
		RequestID: requestID,
		Insights:  *insights,
	})
}

// HandleRepair handles POST /v1/dialectic/repair.
//
// Description:
//
//	Plans new defender arguments that make the target meet the goal.
//	Infeasible and exhausted searches are 200 responses whose Status
//	field says so; only caller mistakes produce error statuses.
//
// Request Body:
//
//	RepairRequest
//
// Response:
//
//	200 OK: RepairResponse
//	400 Bad Request: Malformed graph, goal, or planner settings
//	422 Unprocessable Entity: Enumeration limit exceeded
func (h *Handlers) HandleRepair(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRepair")

	var req RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	g, ok := h.buildGraph(c, logger, req.Graph)
	if !ok {
		return
	}

	cfg := h.repairCfg
	if req.Budget != nil {
		cfg.Budget = *req.Budget
	}
	if req.Fanout != nil {
		cfg.Fanout = *req.Fanout
	}
	if req.Strategy != "" {
		cfg.Strategy = repair.Strategy(req.Strategy)
	}
	cfg.Force = req.Force

	kind, err := semantics.ParseKind(req.Goal.Semantics)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_SEMANTICS",
		})
		return
	}
	mode, ok := accept.ParseMode(req.Goal.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "mode must be credulous or skeptical",
			Code:  "UNKNOWN_MODE",
		})
		return
	}
	goal := repair.Goal{Kind: kind, Mode: mode, MinCoverage: req.Goal.MinCoverage}

	planner, err := repair.NewPlanner(cfg, logger)
	if err != nil {
		logger.Warn("Invalid planner settings", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_PLANNER_CONFIG",
		})
		return
	}

	plan, err := planner.Plan(c.Request.Context(), g, req.Target, goal)
	if err != nil {
		h.writePlanError(c, logger, err)
		return
	}

	resp := RepairResponse{
		RequestID: requestID,
		Status:    plan.Status.String(),
		Reason:    plan.Reason,
		Target:    plan.Target,
		Before:    plan.Before,
		After:     plan.After,
	}
	for _, d := range plan.Defenders {
		resp.Defenders = append(resp.Defenders, DefenderSpec{ID: d.ID, Targets: d.Targets})
	}
	if plan.Augmented != nil {
		resp.Augmented = specFromGraph(plan.Augmented)
	}

	logger.Info("Repair planned",
		"target", req.Target,
		"status", resp.Status,
		"defenders", len(resp.Defenders))
	c.JSON(http.StatusOK, resp)
}

// HandleHealth handles GET /v1/dialectic/health.
//
// Description:
//
//	Returns the health status of the service. Always returns 200 if
//	running.
//
// Response:
//
//	200 OK: HealthResponse
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// buildGraph converts a GraphSpec into an immutable graph, writing a
// 400 response on validation failure.
func (h *Handlers) buildGraph(c *gin.Context, logger *slog.Logger, spec GraphSpec) (*af.Graph, bool) {
	attacks := make([]af.Attack, len(spec.Attacks))
	for i, a := range spec.Attacks {
		attacks[i] = af.Attack{Attacker: a.From, Target: a.To}
	}
	g, err := af.BuildGraph(spec.Arguments, attacks)
	if err != nil {
		code := "INVALID_GRAPH"
		switch {
		case errors.Is(err, af.ErrNoArguments):
			code = "EMPTY_GRAPH"
		case errors.Is(err, af.ErrDuplicateArgument):
			code = "DUPLICATE_ARGUMENT"
		case errors.Is(err, af.ErrUnknownArgument):
			code = "UNKNOWN_ARGUMENT"
		case errors.Is(err, af.ErrInvalidArgumentID):
			code = "INVALID_ARGUMENT_ID"
		}
		logger.Warn("Graph validation failed", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  code,
		})
		return nil, false
	}
	return g, true
}

func (h *Handlers) writeComputeError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, semantics.ErrEnumerationLimit) {
		logger.Warn("Enumeration limit exceeded", "error", err)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  "ENUMERATION_LIMIT",
		})
		return
	}
	logger.Error("Semantics computation failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: err.Error(),
		Code:  "COMPUTE_FAILED",
	})
}

func (h *Handlers) writePlanError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "PLAN_FAILED"

	switch {
	case errors.Is(err, repair.ErrTargetNotFound):
		statusCode = http.StatusBadRequest
		errCode = "TARGET_NOT_FOUND"
	case errors.Is(err, repair.ErrMinCoverageRequired):
		statusCode = http.StatusBadRequest
		errCode = "MIN_COVERAGE_REQUIRED"
	case errors.Is(err, repair.ErrInvalidGoal):
		statusCode = http.StatusBadRequest
		errCode = "INVALID_GOAL"
	case errors.Is(err, repair.ErrUnknownStrategy):
		statusCode = http.StatusBadRequest
		errCode = "UNKNOWN_STRATEGY"
	case errors.Is(err, semantics.ErrEnumerationLimit):
		statusCode = http.StatusUnprocessableEntity
		errCode = "ENUMERATION_LIMIT"
	}

	logger.Error("Repair planning failed", "error", err)
	c.JSON(statusCode, ErrorResponse{
		Error: err.Error(),
		Code:  errCode,
	})
}

// parseKinds resolves kind names, defaulting to every kind.
func parseKinds(names []string) ([]semantics.Kind, error) {
	if len(names) == 0 {
		return semantics.AllKinds(), nil
	}
	kinds := make([]semantics.Kind, len(names))
	for i, name := range names {
		kind, err := semantics.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds[i] = kind
	}
	return kinds, nil
}

// specFromGraph converts a graph back to its wire form.
func specFromGraph(g *af.Graph) *GraphSpec {
	spec := &GraphSpec{Arguments: g.ArgumentIDs()}
	for _, a := range g.Attacks() {
		spec.Attacks = append(spec.Attacks, AttackSpec{From: a.Attacker, To: a.Target})
	}
	return spec
}

// getOrCreateRequestID returns the X-Request-ID header, minting one
// when absent, and echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
