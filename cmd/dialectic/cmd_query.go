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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dialectica/services/dialectic/accept"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

var (
	queryKind        string
	queryMode        string
	queryMinCoverage float64

	queryCmd = &cobra.Command{
		Use:   "query [graph-file] [target]",
		Short: "Decide acceptance of an argument",
		Long: `Decides whether the target argument is credulously or skeptically
accepted under one semantics, printing the verdict and extension
coverage as JSON.`,
		Args: cobra.ExactArgs(2),
		RunE: runQueryCommand,
	}

	insightsCmd = &cobra.Command{
		Use:   "insights [graph-file] [target]",
		Short: "Explain an argument's standing",
		Long: `Prints the target's grounded roadblocks, its persistent and soft
attackers across preferred extensions, and its defense depth.`,
		Args: cobra.ExactArgs(2),
		RunE: runInsightsCommand,
	}
)

func init() {
	queryCmd.Flags().StringVarP(&queryKind, "semantics", "s", "preferred",
		"Semantics kind to query under")
	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", "credulous",
		"Acceptance mode: credulous or skeptical")
	queryCmd.Flags().Float64Var(&queryMinCoverage, "min-coverage", 0,
		"Optional coverage threshold to check")
}

func runQueryCommand(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	target := args[1]
	if !g.Contains(target) {
		return fmt.Errorf("argument %q not in graph", target)
	}

	kind, err := semantics.ParseKind(queryKind)
	if err != nil {
		return err
	}
	mode, ok := accept.ParseMode(queryMode)
	if !ok {
		return fmt.Errorf("unknown mode %q", queryMode)
	}

	family, err := semantics.Compute(cmd.Context(), g, kind)
	if err != nil {
		return err
	}
	cov := accept.Cover(family, target)

	out := struct {
		Target      string          `json:"target"`
		Semantics   string          `json:"semantics"`
		Mode        string          `json:"mode"`
		Accepted    bool            `json:"accepted"`
		Coverage    accept.Coverage `json:"coverage"`
		CoverageMet *bool           `json:"coverage_met,omitempty"`
	}{
		Target:    target,
		Semantics: kind.String(),
		Mode:      mode.String(),
		Accepted:  accept.Accepted(family, target, mode),
		Coverage:  cov,
	}
	if queryMinCoverage > 0 {
		met := cov.Total > 0 && cov.Ratio >= queryMinCoverage
		out.CoverageMet = &met
	}

	return printJSON(out)
}

func runInsightsCommand(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	grounded, err := semantics.Compute(cmd.Context(), g, semantics.KindGrounded)
	if err != nil {
		return err
	}
	preferred, err := semantics.Compute(cmd.Context(), g, semantics.KindPreferred)
	if err != nil {
		return err
	}

	insights, err := accept.Analyze(g, grounded, preferred, args[1])
	if err != nil {
		return err
	}
	return printJSON(insights)
}
