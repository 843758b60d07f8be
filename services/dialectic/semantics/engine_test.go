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
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
)

// =============================================================================
// Fixtures
// =============================================================================

// buildGraph builds a graph or fails the test.
func buildGraph(t *testing.T, ids []string, attacks []af.Attack) *af.Graph {
	t.Helper()
	g, err := af.BuildGraph(ids, attacks)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	return g
}

func atk(pairs ...[2]string) []af.Attack {
	out := make([]af.Attack, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, af.Attack{Attacker: p[0], Target: p[1]})
	}
	return out
}

// twoArgGraph: A2 -> A1.
func twoArgGraph(t *testing.T) *af.Graph {
	return buildGraph(t, []string{"A1", "A2"}, atk([2]string{"A2", "A1"}))
}

// oddCycleGraph: A1 -> A2 -> A3 -> A1.
func oddCycleGraph(t *testing.T) *af.Graph {
	return buildGraph(t, []string{"A1", "A2", "A3"},
		atk([2]string{"A1", "A2"}, [2]string{"A2", "A3"}, [2]string{"A3", "A1"}))
}

// evenCycleGraph: A1 <-> A2.
func evenCycleGraph(t *testing.T) *af.Graph {
	return buildGraph(t, []string{"A1", "A2"},
		atk([2]string{"A1", "A2"}, [2]string{"A2", "A1"}))
}

// chainGraph: a -> b -> c.
func chainGraph(t *testing.T) *af.Graph {
	return buildGraph(t, []string{"a", "b", "c"},
		atk([2]string{"a", "b"}, [2]string{"b", "c"}))
}

// mutexSelfGraph: a <-> b, b -> c, c -> c. Distinguishes preferred from
// semi-stable: {a} is preferred but not semi-stable.
func mutexSelfGraph(t *testing.T) *af.Graph {
	return buildGraph(t, []string{"a", "b", "c"},
		atk([2]string{"a", "b"}, [2]string{"b", "a"},
			[2]string{"b", "c"}, [2]string{"c", "c"}))
}

// fixtureGraphs returns named graphs used for cross-kind property checks.
func fixtureGraphs(t *testing.T) map[string]*af.Graph {
	t.Helper()
	return map[string]*af.Graph{
		"two-arg":    twoArgGraph(t),
		"odd-cycle":  oddCycleGraph(t),
		"even-cycle": evenCycleGraph(t),
		"chain":      chainGraph(t),
		"mutex-self": mutexSelfGraph(t),
		"isolated": buildGraph(t, []string{"A1", "A2", "A3", "A4"},
			atk([2]string{"A2", "A1"}, [2]string{"A3", "A1"})),
	}
}

func mustCompute(t *testing.T, g *af.Graph, kind Kind) *Family {
	t.Helper()
	fam, err := Compute(context.Background(), g, kind)
	if err != nil {
		t.Fatalf("Compute(%v) failed: %v", kind, err)
	}
	return fam
}

func extensions(fam *Family) [][]string {
	out := make([][]string, 0, len(fam.Extensions))
	for _, e := range fam.Extensions {
		out = append(out, []string(e))
	}
	return out
}

// =============================================================================
// Known-answer tests
// =============================================================================

func TestTwoArgGraph(t *testing.T) {
	g := twoArgGraph(t)

	grounded := mustCompute(t, g, KindGrounded)
	if want := [][]string{{"A2"}}; !reflect.DeepEqual(extensions(grounded), want) {
		t.Errorf("grounded = %v, want %v", extensions(grounded), want)
	}
	if grounded.DefenseDepth["A2"] != 1 {
		t.Errorf("DefenseDepth[A2] = %d, want 1", grounded.DefenseDepth["A2"])
	}

	preferred := mustCompute(t, g, KindPreferred)
	if want := [][]string{{"A2"}}; !reflect.DeepEqual(extensions(preferred), want) {
		t.Errorf("preferred = %v, want %v", extensions(preferred), want)
	}

	stable := mustCompute(t, g, KindStable)
	if want := [][]string{{"A2"}}; !reflect.DeepEqual(extensions(stable), want) {
		t.Errorf("stable = %v, want %v", extensions(stable), want)
	}

	complete := mustCompute(t, g, KindComplete)
	if want := [][]string{{"A2"}}; !reflect.DeepEqual(extensions(complete), want) {
		t.Errorf("complete = %v, want %v", extensions(complete), want)
	}

	admissible := mustCompute(t, g, KindAdmissible)
	if want := [][]string{{}, {"A2"}}; !reflect.DeepEqual(extensions(admissible), want) {
		t.Errorf("admissible = %v, want %v", extensions(admissible), want)
	}
}

func TestOddCycle(t *testing.T) {
	g := oddCycleGraph(t)

	grounded := mustCompute(t, g, KindGrounded)
	if len(grounded.Extensions) != 1 || len(grounded.Extensions[0]) != 0 {
		t.Errorf("grounded = %v, want single empty extension", extensions(grounded))
	}

	// In an odd cycle no non-empty set defends itself, so the empty set
	// is the only admissible set and therefore the only preferred one.
	preferred := mustCompute(t, g, KindPreferred)
	if want := [][]string{{}}; !reflect.DeepEqual(extensions(preferred), want) {
		t.Errorf("preferred = %v, want %v", extensions(preferred), want)
	}

	// No stable extension exists. Valid result, not an error.
	stable := mustCompute(t, g, KindStable)
	if len(stable.Extensions) != 0 {
		t.Errorf("stable = %v, want empty family", extensions(stable))
	}

	// The three singleton stances survive only under stage semantics,
	// where range maximality replaces admissibility.
	stage := mustCompute(t, g, KindStage)
	if want := [][]string{{"A1"}, {"A2"}, {"A3"}}; !reflect.DeepEqual(extensions(stage), want) {
		t.Errorf("stage = %v, want %v", extensions(stage), want)
	}

	semi := mustCompute(t, g, KindSemiStable)
	if want := [][]string{{}}; !reflect.DeepEqual(extensions(semi), want) {
		t.Errorf("semi-stable = %v, want %v", extensions(semi), want)
	}
}

func TestEvenCycle(t *testing.T) {
	g := evenCycleGraph(t)

	preferred := mustCompute(t, g, KindPreferred)
	if want := [][]string{{"A1"}, {"A2"}}; !reflect.DeepEqual(extensions(preferred), want) {
		t.Errorf("preferred = %v, want %v", extensions(preferred), want)
	}

	stable := mustCompute(t, g, KindStable)
	if want := [][]string{{"A1"}, {"A2"}}; !reflect.DeepEqual(extensions(stable), want) {
		t.Errorf("stable = %v, want %v", extensions(stable), want)
	}

	complete := mustCompute(t, g, KindComplete)
	if want := [][]string{{}, {"A1"}, {"A2"}}; !reflect.DeepEqual(extensions(complete), want) {
		t.Errorf("complete = %v, want %v", extensions(complete), want)
	}
}

func TestChainDefenseDepth(t *testing.T) {
	g := chainGraph(t)

	grounded := mustCompute(t, g, KindGrounded)
	if want := [][]string{{"a", "c"}}; !reflect.DeepEqual(extensions(grounded), want) {
		t.Fatalf("grounded = %v, want %v", extensions(grounded), want)
	}
	if d := grounded.DefenseDepth["a"]; d != 1 {
		t.Errorf("depth(a) = %d, want 1 (unattacked)", d)
	}
	if d := grounded.DefenseDepth["c"]; d != 2 {
		t.Errorf("depth(c) = %d, want 2 (defended by a at the second iteration)", d)
	}
	if _, ok := grounded.DefenseDepth["b"]; ok {
		t.Error("b has a defense depth but is not in the grounded extension")
	}
}

func TestPreferredNotSemiStable(t *testing.T) {
	g := mutexSelfGraph(t)

	preferred := mustCompute(t, g, KindPreferred)
	if want := [][]string{{"a"}, {"b"}}; !reflect.DeepEqual(extensions(preferred), want) {
		t.Errorf("preferred = %v, want %v", extensions(preferred), want)
	}

	// {a} leaves c unattacked; {b}'s range covers everything.
	semi := mustCompute(t, g, KindSemiStable)
	if want := [][]string{{"b"}}; !reflect.DeepEqual(extensions(semi), want) {
		t.Errorf("semi-stable = %v, want %v", extensions(semi), want)
	}

	stage := mustCompute(t, g, KindStage)
	if want := [][]string{{"b"}}; !reflect.DeepEqual(extensions(stage), want) {
		t.Errorf("stage = %v, want %v", extensions(stage), want)
	}
}

func TestSelfAttackerExcluded(t *testing.T) {
	g := buildGraph(t, []string{"A1"}, atk([2]string{"A1", "A1"}))

	cf := mustCompute(t, g, KindConflictFree)
	if want := [][]string{{}}; !reflect.DeepEqual(extensions(cf), want) {
		t.Errorf("conflict-free = %v, want only the empty set", extensions(cf))
	}

	stable := mustCompute(t, g, KindStable)
	if len(stable.Extensions) != 0 {
		t.Errorf("stable = %v, want empty family", extensions(stable))
	}
}

// =============================================================================
// Cross-kind properties
// =============================================================================

func TestGroundedUniqueAndSubsetOfComplete(t *testing.T) {
	for name, g := range fixtureGraphs(t) {
		t.Run(name, func(t *testing.T) {
			grounded := mustCompute(t, g, KindGrounded)
			if len(grounded.Extensions) != 1 {
				t.Fatalf("grounded has %d extensions, want exactly 1", len(grounded.Extensions))
			}
			complete := mustCompute(t, g, KindComplete)
			for _, ce := range complete.Extensions {
				for _, m := range grounded.Extensions[0] {
					if !ce.Contains(m) {
						t.Errorf("grounded member %q missing from complete extension %v", m, ce)
					}
				}
			}
		})
	}
}

func TestDefenseInvariant(t *testing.T) {
	kinds := []Kind{KindAdmissible, KindComplete, KindPreferred, KindStable}
	for name, g := range fixtureGraphs(t) {
		for _, kind := range kinds {
			t.Run(fmt.Sprintf("%s/%v", name, kind), func(t *testing.T) {
				fam := mustCompute(t, g, kind)
				for _, ext := range fam.Extensions {
					for _, member := range ext {
						for _, attacker := range g.AttackersOf(member) {
							if !attackedByExtension(g, ext, attacker) {
								t.Errorf("extension %v does not defend %q against %q",
									ext, member, attacker)
							}
						}
					}
				}
			})
		}
	}
}

// attackedByExtension reports whether some member of ext attacks the
// given argument.
func attackedByExtension(g *af.Graph, ext Extension, target string) bool {
	for _, m := range ext {
		for _, t := range g.AttackedBy(m) {
			if t == target {
				return true
			}
		}
	}
	return false
}

func TestPreferredMaximality(t *testing.T) {
	for name, g := range fixtureGraphs(t) {
		t.Run(name, func(t *testing.T) {
			fam := mustCompute(t, g, KindPreferred)
			for i, a := range fam.Extensions {
				for j, b := range fam.Extensions {
					if i != j && properSubsetIDs(a, b) {
						t.Errorf("preferred extension %v is a proper subset of %v", a, b)
					}
				}
			}
		})
	}
}

func properSubsetIDs(a, b Extension) bool {
	if len(a) >= len(b) {
		return false
	}
	for _, m := range a {
		if !b.Contains(m) {
			return false
		}
	}
	return true
}

func TestStableImpliesPreferred(t *testing.T) {
	for name, g := range fixtureGraphs(t) {
		t.Run(name, func(t *testing.T) {
			stable := mustCompute(t, g, KindStable)
			preferred := mustCompute(t, g, KindPreferred)
			for _, se := range stable.Extensions {
				found := false
				for _, pe := range preferred.Extensions {
					if reflect.DeepEqual(se, pe) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("stable extension %v not in preferred family %v",
						se, extensions(preferred))
				}
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	g := mutexSelfGraph(t)
	for _, kind := range AllKinds() {
		a := mustCompute(t, g, kind)
		b := mustCompute(t, g, kind)
		if !reflect.DeepEqual(a.Extensions, b.Extensions) {
			t.Errorf("kind %v: repeated computes disagree: %v vs %v",
				kind, extensions(a), extensions(b))
		}
	}
}

// =============================================================================
// API behavior
// =============================================================================

func TestComputeAll(t *testing.T) {
	fams, err := ComputeAll(context.Background(), twoArgGraph(t))
	if err != nil {
		t.Fatalf("ComputeAll failed: %v", err)
	}
	if len(fams) != len(AllKinds()) {
		t.Errorf("ComputeAll returned %d families, want %d", len(fams), len(AllKinds()))
	}
	for _, kind := range AllKinds() {
		fam, ok := fams[kind]
		if !ok {
			t.Errorf("missing family for kind %v", kind)
			continue
		}
		single, err := Compute(context.Background(), twoArgGraph(t), kind)
		if err != nil {
			t.Fatalf("Compute(%v) failed: %v", kind, err)
		}
		if !reflect.DeepEqual(fam.Extensions, single.Extensions) {
			t.Errorf("kind %v: ComputeAll disagrees with Compute", kind)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(context.Background(), nil, KindGrounded); !errors.Is(err, ErrNilGraph) {
		t.Errorf("nil graph: err = %v, want ErrNilGraph", err)
	}
	if _, err := Compute(context.Background(), twoArgGraph(t), Kind(99)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("bad kind: err = %v, want ErrUnknownKind", err)
	}
}

func TestComputeCancellation(t *testing.T) {
	// Twelve independent arguments force thousands of DFS visits, which
	// guarantees at least one cancellation poll.
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("A%d", i)
	}
	g := buildGraph(t, ids, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Compute(ctx, g, KindConflictFree); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExtensionsAreConflictFree(t *testing.T) {
	// Every returned extension must be conflict-free before any stronger
	// property is asserted of it.
	for name, g := range fixtureGraphs(t) {
		t.Run(name, func(t *testing.T) {
			for _, kind := range AllKinds() {
				fam := mustCompute(t, g, kind)
				for _, ext := range fam.Extensions {
					for _, a := range ext {
						for _, victim := range g.AttackedBy(a) {
							if ext.Contains(victim) {
								t.Errorf("kind %v: extension %v has internal attack %s->%s",
									kind, ext, a, victim)
							}
						}
					}
				}
			}
		})
	}
}
