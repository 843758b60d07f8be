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

// Argument is a single node in an argumentation framework.
//
// The ID is an opaque identifier chosen by the caller. The Index is a
// stable integer assigned at construction time in declaration order; the
// semantics engine uses it for bitmask set operations.
type Argument struct {
	// ID is the opaque identifier of the argument.
	ID string

	// Index is the stable position of the argument in the graph,
	// assigned in declaration order starting at 0.
	Index int
}

// Attack is a directed edge meaning "Attacker undermines Target".
//
// Self-attacks (Attacker == Target) are legal.
type Attack struct {
	Attacker string
	Target   string
}

// Defender describes a new, unattacked argument to be added to a graph.
//
// A defender attacks only pre-existing arguments (its Targets), never
// other defenders, and nothing attacks it. These constraints are enforced
// by Graph.WithDefenders.
type Defender struct {
	// ID is the identifier of the new argument.
	ID string

	// Targets are the existing arguments this defender attacks.
	// Every edge is explicit and user-auditable; none are inferred.
	Targets []string
}

// Graph is an immutable argumentation framework.
//
// Attacks are indexed in both directions because defense computation
// needs reverse adjacency (who attacks me) and range computation needs
// forward adjacency (who I attack).
type Graph struct {
	args    []Argument
	byID    map[string]int
	attacks []Attack

	// out[i] lists indices attacked by argument i, ascending.
	out [][]int

	// in[i] lists indices attacking argument i, ascending.
	in [][]int

	// edgeSet holds (attacker<<32 | target) index pairs for O(1) lookup.
	edgeSet map[uint64]struct{}
}

// NumArguments returns the number of arguments in the graph.
func (g *Graph) NumArguments() int {
	return len(g.args)
}

// NumAttacks returns the number of distinct attack edges in the graph.
func (g *Graph) NumAttacks() int {
	return len(g.attacks)
}

// Arguments returns a copy of the argument list in index order.
func (g *Graph) Arguments() []Argument {
	out := make([]Argument, len(g.args))
	copy(out, g.args)
	return out
}

// ArgumentIDs returns the argument identifiers in index order.
func (g *Graph) ArgumentIDs() []string {
	ids := make([]string, len(g.args))
	for i, a := range g.args {
		ids[i] = a.ID
	}
	return ids
}

// Attacks returns a copy of the attack list in declaration order.
// Duplicate edges in the original input appear once.
func (g *Graph) Attacks() []Attack {
	out := make([]Attack, len(g.attacks))
	copy(out, g.attacks)
	return out
}

// Contains reports whether the graph declares the given argument id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// IndexOf returns the stable index of the given argument id.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.byID[id]
	return i, ok
}

// IDOf returns the argument id at the given index.
// It panics if the index is out of range, mirroring slice semantics.
func (g *Graph) IDOf(index int) string {
	return g.args[index].ID
}

// HasAttack reports whether an attack edge exists between two indices.
func (g *Graph) HasAttack(attacker, target int) bool {
	_, ok := g.edgeSet[edgeKey(attacker, target)]
	return ok
}

// AttackerIndices returns the indices attacking argument i, ascending.
// The returned slice is a copy.
func (g *Graph) AttackerIndices(i int) []int {
	out := make([]int, len(g.in[i]))
	copy(out, g.in[i])
	return out
}

// TargetIndices returns the indices attacked by argument i, ascending.
// The returned slice is a copy.
func (g *Graph) TargetIndices(i int) []int {
	out := make([]int, len(g.out[i]))
	copy(out, g.out[i])
	return out
}

// AttackersOf returns the ids of arguments attacking the given id,
// in index order. Returns nil if the id is unknown.
func (g *Graph) AttackersOf(id string) []string {
	i, ok := g.byID[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.in[i]))
	for _, j := range g.in[i] {
		out = append(out, g.args[j].ID)
	}
	return out
}

// AttackedBy returns the ids of arguments attacked by the given id,
// in index order. Returns nil if the id is unknown.
func (g *Graph) AttackedBy(id string) []string {
	i, ok := g.byID[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.out[i]))
	for _, j := range g.out[i] {
		out = append(out, g.args[j].ID)
	}
	return out
}

// IsSelfAttacking reports whether the given argument attacks itself.
func (g *Graph) IsSelfAttacking(id string) bool {
	i, ok := g.byID[id]
	if !ok {
		return false
	}
	return g.HasAttack(i, i)
}

// edgeKey packs an index pair into a map key.
func edgeKey(attacker, target int) uint64 {
	return uint64(attacker)<<32 | uint64(uint32(target))
}
