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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

var (
	computeSemantics []string
	computeDOTPath   string

	computeCmd = &cobra.Command{
		Use:   "compute [graph-file]",
		Short: "Compute extension families for a graph",
		Long: `Reads an edge-list graph file and prints the extension families of
the requested semantics as JSON. With no --semantics flag, every kind
is computed.`,
		Args: cobra.ExactArgs(1),
		RunE: runComputeCommand,
	}
)

func init() {
	computeCmd.Flags().StringSliceVarP(&computeSemantics, "semantics", "s", nil,
		"Semantics kinds to compute (default: all)")
	computeCmd.Flags().StringVar(&computeDOTPath, "dot", "",
		"Also write the graph in Graphviz DOT format to this file")
}

// loadGraph reads an edge-list graph file.
func loadGraph(path string) (*af.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()
	return af.Parse(f)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runComputeCommand(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		logger.Error("failed to load graph", "path", args[0], "error", err)
		return err
	}

	kinds := semantics.AllKinds()
	if len(computeSemantics) > 0 {
		kinds = kinds[:0]
		for _, name := range computeSemantics {
			kind, err := semantics.ParseKind(name)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
	}

	type familyOut struct {
		Kind         string         `json:"kind"`
		Extensions   [][]string     `json:"extensions"`
		DefenseDepth map[string]int `json:"defense_depth,omitempty"`
	}
	out := struct {
		NumArguments int         `json:"num_arguments"`
		NumAttacks   int         `json:"num_attacks"`
		Families     []familyOut `json:"families"`
	}{
		NumArguments: g.NumArguments(),
		NumAttacks:   g.NumAttacks(),
	}

	for _, kind := range kinds {
		family, err := semantics.Compute(cmd.Context(), g, kind)
		if err != nil {
			logger.Error("computation failed", "kind", kind.String(), "error", err)
			return err
		}
		fo := familyOut{
			Kind:         kind.String(),
			Extensions:   make([][]string, len(family.Extensions)),
			DefenseDepth: family.DefenseDepth,
		}
		for i, ext := range family.Extensions {
			fo.Extensions[i] = []string(ext)
		}
		out.Families = append(out.Families, fo)
	}

	if computeDOTPath != "" {
		f, err := os.Create(computeDOTPath)
		if err != nil {
			return fmt.Errorf("create dot file: %w", err)
		}
		defer f.Close()
		if err := af.EncodeDOT(f, g, "dialectic"); err != nil {
			return fmt.Errorf("write dot file: %w", err)
		}
		logger.Info("wrote DOT export", "path", computeDOTPath)
	}

	return printJSON(out)
}
