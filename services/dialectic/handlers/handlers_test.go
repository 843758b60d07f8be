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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/dialectica/services/dialectic/repair"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	h := NewHandlers(repair.DefaultConfig())
	v1 := router.Group("/v1")
	RegisterRoutes(v1, h)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v\nbody: %s", err, w.Body.String())
	}
	return out
}

func twoArgSpec() GraphSpec {
	return GraphSpec{
		Arguments: []string{"A1", "A2"},
		Attacks:   []AttackSpec{{From: "A2", To: "A1"}},
	}
}

func TestHandlers_HandleHealth(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/v1/dialectic/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := decodeJSON[HealthResponse](t, w)
	if resp.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %q", resp.Status)
	}
	if resp.Version != ServiceVersion {
		t.Errorf("expected version %q, got %q", ServiceVersion, resp.Version)
	}
}

func TestHandlers_HandleCompute(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/compute", ComputeRequest{
		Graph:     twoArgSpec(),
		Semantics: []string{"grounded", "preferred"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[ComputeResponse](t, w)
	if resp.NumArguments != 2 {
		t.Errorf("num_arguments = %d, want 2", resp.NumArguments)
	}
	if len(resp.Families) != 2 {
		t.Fatalf("families = %d, want 2", len(resp.Families))
	}
	grounded := resp.Families[0]
	if grounded.Kind != "grounded" {
		t.Errorf("first family kind = %q, want grounded", grounded.Kind)
	}
	if len(grounded.Extensions) != 1 || len(grounded.Extensions[0]) != 1 || grounded.Extensions[0][0] != "A2" {
		t.Errorf("grounded extensions = %v, want [[A2]]", grounded.Extensions)
	}
	if grounded.DefenseDepth["A2"] != 1 {
		t.Errorf("defense depth = %v, want A2:1", grounded.DefenseDepth)
	}
	if resp.Families[1].DefenseDepth != nil {
		t.Errorf("preferred family should not carry defense depth")
	}
}

func TestHandlers_HandleCompute_AllKindsByDefault(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/compute", ComputeRequest{Graph: twoArgSpec()})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[ComputeResponse](t, w)
	if len(resp.Families) != 8 {
		t.Errorf("families = %d, want 8", len(resp.Families))
	}
}

func TestHandlers_HandleCompute_BadGraph(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/compute", ComputeRequest{
		Graph: GraphSpec{
			Arguments: []string{"A1"},
			Attacks:   []AttackSpec{{From: "A1", To: "ghost"}},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "UNKNOWN_ARGUMENT" {
		t.Errorf("code = %q, want UNKNOWN_ARGUMENT", resp.Code)
	}
}

func TestHandlers_HandleCompute_UnknownSemantics(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/compute", ComputeRequest{
		Graph:     twoArgSpec(),
		Semantics: []string{"vibes"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "UNKNOWN_SEMANTICS" {
		t.Errorf("code = %q, want UNKNOWN_SEMANTICS", resp.Code)
	}
}

func TestHandlers_HandleQuery(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/query", QueryRequest{
		Graph:     twoArgSpec(),
		Target:    "A2",
		Semantics: "grounded",
		Mode:      "skeptical",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[QueryResponse](t, w)
	if !resp.Accepted {
		t.Error("A2 should be skeptically accepted under grounded semantics")
	}
	if resp.Coverage.Contained != 1 || resp.Coverage.Total != 1 {
		t.Errorf("coverage = %+v, want 1/1", resp.Coverage)
	}
	if resp.CoverageMet != nil {
		t.Error("coverage_met should be absent without a threshold")
	}
}

func TestHandlers_HandleQuery_CoverageThreshold(t *testing.T) {
	router := setupTestRouter()

	// Mutual attack: A1 is in one of two preferred extensions.
	spec := GraphSpec{
		Arguments: []string{"A1", "A2"},
		Attacks:   []AttackSpec{{From: "A1", To: "A2"}, {From: "A2", To: "A1"}},
	}
	w := postJSON(t, router, "/v1/dialectic/query", QueryRequest{
		Graph:       spec,
		Target:      "A1",
		Semantics:   "preferred",
		Mode:        "credulous",
		MinCoverage: 0.75,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[QueryResponse](t, w)
	if !resp.Accepted {
		t.Error("A1 should be credulously accepted")
	}
	if resp.CoverageMet == nil || *resp.CoverageMet {
		t.Errorf("coverage_met = %v, want false at 0.5 coverage", resp.CoverageMet)
	}
}

func TestHandlers_HandleQuery_TargetNotFound(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/query", QueryRequest{
		Graph:     twoArgSpec(),
		Target:    "ghost",
		Semantics: "grounded",
		Mode:      "credulous",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "TARGET_NOT_FOUND" {
		t.Errorf("code = %q, want TARGET_NOT_FOUND", resp.Code)
	}
}

func TestHandlers_HandleInsights(t *testing.T) {
	router := setupTestRouter()

	// A2 and A3 attack A1; only A3 is countered by the grounded
	// extension, so A2 is the remaining roadblock.
	spec := GraphSpec{
		Arguments: []string{"A1", "A2", "A3", "A4"},
		Attacks: []AttackSpec{
			{From: "A2", To: "A1"},
			{From: "A3", To: "A1"},
			{From: "A4", To: "A3"},
		},
	}
	w := postJSON(t, router, "/v1/dialectic/insights", InsightsRequest{
		Graph:  spec,
		Target: "A1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[InsightsResponse](t, w)
	if got := resp.Insights.GroundedRoadblocks; len(got) != 1 || got[0] != "A2" {
		t.Errorf("roadblocks = %v, want [A2]", got)
	}
}

func TestHandlers_HandleRepair(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/repair", RepairRequest{
		Graph:  twoArgSpec(),
		Target: "A1",
		Goal:   GoalSpec{Semantics: "grounded", Mode: "credulous"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[RepairResponse](t, w)
	if resp.Status != "planned" {
		t.Fatalf("status = %q (%s), want planned", resp.Status, resp.Reason)
	}
	if len(resp.Defenders) != 1 || resp.Defenders[0].ID != "R1" {
		t.Errorf("defenders = %+v, want one defender R1", resp.Defenders)
	}
	if resp.Augmented == nil || len(resp.Augmented.Arguments) != 3 {
		t.Errorf("augmented graph missing or wrong size: %+v", resp.Augmented)
	}
}

func TestHandlers_HandleRepair_InfeasibleIs200(t *testing.T) {
	router := setupTestRouter()

	budget := 1
	fanout := 1
	w := postJSON(t, router, "/v1/dialectic/repair", RepairRequest{
		Graph: GraphSpec{
			Arguments: []string{"A1", "A2", "A3"},
			Attacks:   []AttackSpec{{From: "A2", To: "A1"}, {From: "A3", To: "A1"}},
		},
		Target: "A1",
		Goal:   GoalSpec{Semantics: "grounded", Mode: "credulous"},
		Budget: &budget,
		Fanout: &fanout,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("infeasible must be 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[RepairResponse](t, w)
	if resp.Status != "infeasible" {
		t.Errorf("status = %q, want infeasible", resp.Status)
	}
	if resp.Reason == "" {
		t.Error("infeasible response should carry a reason")
	}
	if resp.Augmented != nil {
		t.Error("infeasible response should not carry an augmented graph")
	}
}

func TestHandlers_HandleRepair_SkepticalNeedsThreshold(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/repair", RepairRequest{
		Graph:  twoArgSpec(),
		Target: "A1",
		Goal:   GoalSpec{Semantics: "preferred", Mode: "skeptical"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "MIN_COVERAGE_REQUIRED" {
		t.Errorf("code = %q, want MIN_COVERAGE_REQUIRED", resp.Code)
	}
}

func TestHandlers_HandleRepair_BadStrategy(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/v1/dialectic/repair", RepairRequest{
		Graph:    twoArgSpec(),
		Target:   "A1",
		Goal:     GoalSpec{Semantics: "grounded", Mode: "credulous"},
		Strategy: "annealing",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "INVALID_PLANNER_CONFIG" {
		t.Errorf("code = %q, want INVALID_PLANNER_CONFIG", resp.Code)
	}
}

func TestHandlers_RequestIDEchoed(t *testing.T) {
	router := setupTestRouter()

	data, _ := json.Marshal(ComputeRequest{Graph: twoArgSpec()})
	req, _ := http.NewRequest("POST", "/v1/dialectic/compute", bytes.NewReader(data))
	req.Header.Set("X-Request-ID", "test-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "test-123" {
		t.Errorf("X-Request-ID = %q, want test-123", got)
	}
	resp := decodeJSON[ComputeResponse](t, w)
	if resp.RequestID != "test-123" {
		t.Errorf("request_id = %q, want test-123", resp.RequestID)
	}
}

func TestHandlers_InvalidBody(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("POST", "/v1/dialectic/compute", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", resp.Code)
	}
}
