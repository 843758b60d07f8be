// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dialectica/services/dialectic/accept"
	"github.com/AleutianAI/dialectica/services/dialectic/af"
	"github.com/AleutianAI/dialectica/services/dialectic/repair"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

var (
	repairKind        string
	repairMode        string
	repairMinCoverage float64
	repairBudget      int
	repairFanout      int
	repairStrategy    string
	repairForce       bool
	repairConfigPath  string
	repairOutPath     string

	repairCmd = &cobra.Command{
		Use:   "repair [graph-file] [target]",
		Short: "Plan defenders that make an argument acceptable",
		Long: `Searches for new unattacked defender arguments whose attacks on the
target's blockers establish the acceptance goal. The plan is printed
as JSON; infeasibility and search exhaustion are reported in its
status, not as command failures.`,
		Args: cobra.ExactArgs(2),
		RunE: runRepairCommand,
	}
)

func init() {
	repairCmd.Flags().StringVarP(&repairKind, "semantics", "s", "grounded",
		"Semantics kind the goal targets")
	repairCmd.Flags().StringVarP(&repairMode, "mode", "m", "credulous",
		"Acceptance mode: credulous or skeptical")
	repairCmd.Flags().Float64Var(&repairMinCoverage, "min-coverage", 0,
		"Coverage threshold (required for skeptical goals)")
	repairCmd.Flags().IntVarP(&repairBudget, "budget", "k", 0,
		"Maximum number of new defenders (0: config default)")
	repairCmd.Flags().IntVar(&repairFanout, "fanout", -1,
		"Blockers per defender (0: one defender for all; -1: config default)")
	repairCmd.Flags().StringVar(&repairStrategy, "strategy", "",
		"Search strategy: greedy or exact (default: config)")
	repairCmd.Flags().BoolVar(&repairForce, "force", false,
		"Re-plan even when the goal already holds")
	repairCmd.Flags().StringVarP(&repairConfigPath, "config", "c", "",
		"Planner config file (json or yaml)")
	repairCmd.Flags().StringVarP(&repairOutPath, "out", "o", "",
		"Write the augmented graph as an edge-list file")
}

func runRepairCommand(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	target := args[1]

	cfg, err := repair.LoadConfig(repairConfigPath)
	if err != nil {
		return err
	}
	if repairBudget > 0 {
		cfg.Budget = repairBudget
	}
	if repairFanout >= 0 {
		cfg.Fanout = repairFanout
	}
	if repairStrategy != "" {
		cfg.Strategy = repair.Strategy(repairStrategy)
	}
	cfg.Force = repairForce

	kind, err := semantics.ParseKind(repairKind)
	if err != nil {
		return err
	}
	mode, ok := accept.ParseMode(repairMode)
	if !ok {
		return fmt.Errorf("unknown mode %q", repairMode)
	}
	goal := repair.Goal{Kind: kind, Mode: mode, MinCoverage: repairMinCoverage}

	planner, err := repair.NewPlanner(cfg, logger.Slog())
	if err != nil {
		return err
	}
	plan, err := planner.Plan(cmd.Context(), g, target, goal)
	if err != nil {
		return err
	}

	out := struct {
		Status    string          `json:"status"`
		Reason    string          `json:"reason,omitempty"`
		Target    string          `json:"target"`
		Defenders []af.Defender   `json:"defenders,omitempty"`
		Before    accept.Coverage `json:"before"`
		After     accept.Coverage `json:"after"`
	}{
		Status:    plan.Status.String(),
		Reason:    plan.Reason,
		Target:    plan.Target,
		Defenders: plan.Defenders,
		Before:    plan.Before,
		After:     plan.After,
	}

	if repairOutPath != "" && plan.Augmented != nil {
		f, err := os.Create(repairOutPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		if err := af.Encode(f, plan.Augmented); err != nil {
			return fmt.Errorf("write augmented graph: %w", err)
		}
		logger.Info("wrote augmented graph", "path", repairOutPath)
	}

	return printJSON(out)
}
