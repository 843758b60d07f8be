// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package semantics

import (
	"github.com/AleutianAI/dialectica/services/dialectic/af"
)

// frame is the bitmask view of a graph used during one computation.
// It is built once per Compute call and read-only afterwards, so the
// parallel candidate checks can share it without locking.
type frame struct {
	g *af.Graph
	n int

	// attackers[i] holds the indices attacking argument i.
	attackers []argset

	// targets[i] holds the indices attacked by argument i.
	targets []argset

	// selfAtk holds all self-attacking arguments. They can never join a
	// conflict-free set.
	selfAtk argset

	// all holds every argument index.
	all argset
}

func newFrame(g *af.Graph) *frame {
	n := g.NumArguments()
	f := &frame{
		g:         g,
		n:         n,
		attackers: make([]argset, n),
		targets:   make([]argset, n),
		selfAtk:   newArgset(n),
		all:       newArgset(n),
	}
	for i := 0; i < n; i++ {
		f.all.add(i)
		f.attackers[i] = newArgset(n)
		f.targets[i] = newArgset(n)
	}
	for i := 0; i < n; i++ {
		for _, j := range g.TargetIndices(i) {
			f.targets[i].add(j)
			f.attackers[j].add(i)
			if i == j {
				f.selfAtk.add(i)
			}
		}
	}
	return f
}

// conflictFree reports whether no member of s attacks a member of s.
// A single forward scan covers both directions: any internal attack
// shows up in some member's target set. Self-attacks are caught the
// same way.
func (f *frame) conflictFree(s argset) bool {
	for _, i := range s.members() {
		if f.targets[i].intersects(s) {
			return false
		}
	}
	return true
}

// attackedBy returns the set of arguments attacked by any member of s.
func (f *frame) attackedBy(s argset) argset {
	out := newArgset(f.n)
	for _, i := range s.members() {
		out.orWith(f.targets[i])
	}
	return out
}

// rangeOf returns s together with everything s attacks.
func (f *frame) rangeOf(s argset) argset {
	out := f.attackedBy(s)
	out.orWith(s)
	return out
}

// characteristic returns F(S) = { a : S defends a }. S defends a iff
// every attacker of a is attacked by some member of S.
func (f *frame) characteristic(s argset) argset {
	attacked := f.attackedBy(s)
	out := newArgset(f.n)
	for i := 0; i < f.n; i++ {
		if f.attackers[i].subsetOf(attacked) {
			out.add(i)
		}
	}
	return out
}

// admissible reports whether s is conflict-free and defends every member.
func (f *frame) admissible(s argset) bool {
	if !f.conflictFree(s) {
		return false
	}
	attacked := f.attackedBy(s)
	for _, i := range s.members() {
		if !f.attackers[i].subsetOf(attacked) {
			return false
		}
	}
	return true
}

// complete reports whether s contains exactly what it defends. Callers
// pass only conflict-free sets, so S == F(S) implies admissibility.
func (f *frame) complete(s argset) bool {
	return f.characteristic(s).equal(s)
}

// stable reports whether s attacks every argument outside itself.
// Callers pass only conflict-free sets.
func (f *frame) stable(s argset) bool {
	return f.rangeOf(s).equal(f.all)
}

// extension converts a set to its ordered id list.
func (f *frame) extension(s argset) Extension {
	idx := s.members()
	out := make(Extension, 0, len(idx))
	for _, i := range idx {
		out = append(out, f.g.IDOf(i))
	}
	return out
}
