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
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxArguments is the maximum number of arguments a graph can hold.
// The semantics engine performs exponential enumeration; anything near this
// bound is already impractical for exact semantics, so the limit exists to
// fail fast rather than to size real workloads.
const DefaultMaxArguments = 4096

// BuildGraph constructs an immutable Graph from an argument id list and an
// attack list.
//
// Description:
//
//	Validates all input up front: duplicate ids, dangling attack endpoints,
//	and reserved characters in ids all fail here rather than at query time.
//	Duplicate attack edges are collapsed to a single edge.
//
// Inputs:
//   - ids: Argument identifiers in declaration order. Must be non-empty.
//   - attacks: Directed attack edges. Self-attacks are legal.
//
// Outputs:
//   - *Graph: Immutable graph, ready for concurrent reads.
//   - error: ErrNoArguments, ErrDuplicateArgument, ErrUnknownArgument,
//     or ErrInvalidArgumentID on malformed input.
//
// Thread Safety: The returned graph is safe for concurrent use.
func BuildGraph(ids []string, attacks []Attack) (*Graph, error) {
	if len(ids) == 0 {
		return nil, ErrNoArguments
	}
	if len(ids) > DefaultMaxArguments {
		return nil, fmt.Errorf("%w: %d arguments exceeds limit %d",
			ErrInvalidArgumentID, len(ids), DefaultMaxArguments)
	}

	byID := make(map[string]int, len(ids))
	args := make([]Argument, 0, len(ids))
	for i, id := range ids {
		if err := validateID(id); err != nil {
			return nil, err
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateArgument, id)
		}
		byID[id] = i
		args = append(args, Argument{ID: id, Index: i})
	}

	g := &Graph{
		args:    args,
		byID:    byID,
		out:     make([][]int, len(args)),
		in:      make([][]int, len(args)),
		edgeSet: make(map[uint64]struct{}, len(attacks)),
	}

	for _, atk := range attacks {
		from, ok := byID[atk.Attacker]
		if !ok {
			return nil, fmt.Errorf("%w: attacker %q", ErrUnknownArgument, atk.Attacker)
		}
		to, ok := byID[atk.Target]
		if !ok {
			return nil, fmt.Errorf("%w: target %q", ErrUnknownArgument, atk.Target)
		}
		key := edgeKey(from, to)
		if _, seen := g.edgeSet[key]; seen {
			continue
		}
		g.edgeSet[key] = struct{}{}
		g.attacks = append(g.attacks, Attack{Attacker: atk.Attacker, Target: atk.Target})
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
	}

	for i := range g.out {
		sort.Ints(g.out[i])
		sort.Ints(g.in[i])
	}

	return g, nil
}

// WithDefenders builds a NEW graph consisting of this graph plus the given
// defender arguments and their declared attack edges.
//
// Description:
//
//	The receiver is never modified, so before/after comparison is always
//	available to callers. Defender invariants are enforced here:
//	a defender may attack only arguments that pre-exist in the receiver
//	(never another defender), and no edge targets a defender, so every
//	defender is unattacked in the result.
//
// Inputs:
//   - defenders: New arguments with their explicit target lists.
//
// Outputs:
//   - *Graph: Augmented graph with defenders appended after existing
//     arguments in declaration order.
//   - error: ErrDefenderExists, ErrDefenderNoTargets, ErrUnknownArgument,
//     or ErrInvalidArgumentID.
func (g *Graph) WithDefenders(defenders []Defender) (*Graph, error) {
	ids := g.ArgumentIDs()
	attacks := g.Attacks()

	seen := make(map[string]struct{}, len(defenders))
	for _, d := range defenders {
		if err := validateID(d.ID); err != nil {
			return nil, err
		}
		if g.Contains(d.ID) {
			return nil, fmt.Errorf("%w: %q", ErrDefenderExists, d.ID)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateArgument, d.ID)
		}
		seen[d.ID] = struct{}{}
		if len(d.Targets) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrDefenderNoTargets, d.ID)
		}
		for _, t := range d.Targets {
			if !g.Contains(t) {
				return nil, fmt.Errorf("%w: defender %q targets %q", ErrUnknownArgument, d.ID, t)
			}
		}
		ids = append(ids, d.ID)
		for _, t := range d.Targets {
			attacks = append(attacks, Attack{Attacker: d.ID, Target: t})
		}
	}

	return BuildGraph(ids, attacks)
}

// validateID rejects identifiers the edge-list serialization cannot
// round-trip.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidArgumentID)
	}
	if strings.ContainsAny(id, ",\n\r") {
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidArgumentID, id)
	}
	if strings.HasPrefix(id, "#") {
		return fmt.Errorf("%w: %q starts with comment marker", ErrInvalidArgumentID, id)
	}
	if id != strings.TrimSpace(id) {
		return fmt.Errorf("%w: %q has leading or trailing whitespace", ErrInvalidArgumentID, id)
	}
	return nil
}
