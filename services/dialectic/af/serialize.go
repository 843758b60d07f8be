// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package af

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Edge-list format:
//
//	# optional comments
//	A1
//	A2
//	A2,A1
//
// A line without a comma declares an argument; a line with exactly one
// comma declares an attack "attacker,target". Blank lines and lines
// starting with '#' are ignored. The format is order-independent on
// re-parse: round-tripping preserves the argument set and attack set.

// Encode writes the graph in the line-based edge-list format.
//
// Arguments are written first in index order, then attacks in
// declaration order.
func Encode(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for _, a := range g.args {
		if _, err := fmt.Fprintln(bw, a.ID); err != nil {
			return fmt.Errorf("encode argument: %w", err)
		}
	}
	for _, atk := range g.attacks {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", atk.Attacker, atk.Target); err != nil {
			return fmt.Errorf("encode attack: %w", err)
		}
	}
	return bw.Flush()
}

// EncodeString returns the edge-list representation of the graph.
func EncodeString(g *Graph) string {
	var sb strings.Builder
	_ = Encode(&sb, g) // strings.Builder writes cannot fail
	return sb.String()
}

// Parse reads a graph from the line-based edge-list format.
//
// Description:
//
//	Argument declarations may appear in any order relative to attack
//	lines; all declarations are collected before the graph is built, so
//	a forward reference from an attack line is legal. Malformed lines
//	(more than one comma) and attacks on undeclared arguments fail with
//	typed errors including the offending line number.
//
// Inputs:
//   - r: Source of edge-list text.
//
// Outputs:
//   - *Graph: Parsed graph.
//   - error: ErrMalformedLine, or any BuildGraph construction error.
func Parse(r io.Reader) (*Graph, error) {
	var ids []string
	var attacks []Attack

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch strings.Count(line, ",") {
		case 0:
			ids = append(ids, line)
		case 1:
			parts := strings.SplitN(line, ",", 2)
			attacks = append(attacks, Attack{
				Attacker: strings.TrimSpace(parts[0]),
				Target:   strings.TrimSpace(parts[1]),
			})
		default:
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}

	return BuildGraph(ids, attacks)
}

// ParseString reads a graph from an edge-list string.
func ParseString(s string) (*Graph, error) {
	return Parse(strings.NewReader(s))
}

// EncodeDOT writes the graph as a Graphviz digraph for visualization.
//
// Node names are quoted, so arbitrary argument ids are safe. Output is
// deterministic: nodes in index order, edges sorted by attacker then
// target id.
func EncodeDOT(w io.Writer, g *Graph, name string) error {
	if name == "" {
		name = "framework"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %q {\n", name)
	fmt.Fprintln(bw, "  rankdir=LR;")
	for _, a := range g.args {
		fmt.Fprintf(bw, "  %q;\n", a.ID)
	}
	edges := g.Attacks()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Attacker != edges[j].Attacker {
			return edges[i].Attacker < edges[j].Attacker
		}
		return edges[i].Target < edges[j].Target
	})
	for _, e := range edges {
		fmt.Fprintf(bw, "  %q -> %q;\n", e.Attacker, e.Target)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
