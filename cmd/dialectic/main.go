// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command dialectic analyzes abstract argumentation graphs.
//
// It computes Dung extension families, answers acceptance queries, and
// plans repairs that make a target argument defensible, either from
// the command line against edge-list files or as an HTTP API server.
//
// Usage:
//
//	dialectic compute graph.af --semantics preferred
//	dialectic query graph.af A1 --semantics grounded --mode skeptical
//	dialectic insights graph.af A1
//	dialectic repair graph.af A1 --budget 2 --strategy exact
//	dialectic serve --port 8080
//
// Graph files use a line-based edge-list format: a line without a
// comma declares an argument, "attacker,target" declares an attack,
// and lines starting with '#' are comments.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dialectica/pkg/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:   "dialectic",
		Short: "Analyze abstract argumentation graphs",
		Long: `Dialectic computes Dung semantics (grounded, preferred, stable, and
friends) over attack graphs, decides credulous and skeptical acceptance,
and searches for minimal defender additions that repair an argument's
standing.`,
	}

	debugMode bool

	logger = logging.Default()
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
