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
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/dialectica/services/dialectic/af"
)

// Extension is a set of jointly acceptable arguments, ordered by
// argument index. Extensions are immutable snapshots.
type Extension []string

// Contains reports whether the extension includes the given id.
func (e Extension) Contains(id string) bool {
	for _, m := range e {
		if m == id {
			return true
		}
	}
	return false
}

// Family holds all extensions of one semantics kind for one graph.
type Family struct {
	// Kind is the semantics the family was computed under.
	Kind Kind

	// Extensions is the ordered list of extensions. Empty is a valid
	// result for the stable kind.
	Extensions []Extension

	// DefenseDepth maps each member of the grounded extension to the
	// 1-based fixed-point iteration at which it first appeared.
	// Populated only for KindGrounded.
	DefenseDepth map[string]int
}

// Compute returns the extension family of the given kind.
//
// Description:
//
//	Pure function of its inputs; no state survives the call. The
//	enumerated kinds (everything except grounded) generate candidates by
//	extending the grounded extension where the theory allows it, falling
//	back to full conflict-free enumeration only for the kinds whose
//	extensions need not contain the grounded extension.
//
// Inputs:
//   - ctx: Context for cancellation. Checked between enumeration batches.
//   - g: Immutable graph. Must not be nil.
//   - kind: Requested semantics. Must be inside the closed enumeration.
//
// Outputs:
//   - *Family: Deterministically ordered extensions. Never partial.
//   - error: ErrNilGraph, ErrUnknownKind, ErrEnumerationLimit, or a
//     wrapped context error on cancellation.
//
// Thread Safety: Safe for concurrent use over any graphs.
func Compute(ctx context.Context, g *af.Graph, kind Kind) (*Family, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	ctx, span := tracer.Start(ctx, "semantics.Compute",
		trace.WithAttributes(
			attribute.String("kind", kind.String()),
			attribute.Int("num_arguments", g.NumArguments()),
			attribute.Int("num_attacks", g.NumAttacks()),
		),
	)
	defer span.End()
	start := time.Now()

	fam, candidates, err := compute(ctx, newFrame(g), kind)
	recordCompute(ctx, kind, g.NumArguments(), candidates, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("num_extensions", len(fam.Extensions)))
	return fam, nil
}

// ComputeAll returns the family for every kind, keyed by Kind.
//
// The frame and grounded fixed point are shared across kinds, so this is
// cheaper than eight independent Compute calls.
func ComputeAll(ctx context.Context, g *af.Graph) (map[Kind]*Family, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	ctx, span := tracer.Start(ctx, "semantics.ComputeAll",
		trace.WithAttributes(
			attribute.Int("num_arguments", g.NumArguments()),
			attribute.Int("num_attacks", g.NumAttacks()),
		),
	)
	defer span.End()

	f := newFrame(g)
	out := make(map[Kind]*Family, int(numKinds))
	for _, kind := range AllKinds() {
		start := time.Now()
		fam, candidates, err := compute(ctx, f, kind)
		recordCompute(ctx, kind, g.NumArguments(), candidates, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("compute %s: %w", kind, err)
		}
		out[kind] = fam
	}
	return out, nil
}

// compute dispatches one kind over a prepared frame. It returns the
// family and the number of candidate sets examined (for metrics).
func compute(ctx context.Context, f *frame, kind Kind) (*Family, int, error) {
	switch kind {
	case KindGrounded:
		set, depth := f.grounded()
		fam := &Family{
			Kind:         kind,
			Extensions:   []Extension{f.extension(set)},
			DefenseDepth: make(map[string]int, set.count()),
		}
		for _, i := range set.members() {
			fam.DefenseDepth[f.g.IDOf(i)] = depth[i]
		}
		return fam, 1, nil

	case KindConflictFree:
		cands, err := f.enumerateConflictFree(ctx, newArgset(f.n), f.allCandidates())
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, cands), len(cands), nil

	case KindAdmissible:
		cands, err := f.enumerateConflictFree(ctx, newArgset(f.n), f.allCandidates())
		if err != nil {
			return nil, 0, err
		}
		adm, err := f.filterParallel(ctx, cands, f.admissible)
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, adm), len(cands), nil

	case KindComplete:
		sets, n, err := f.completeSets(ctx)
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, sets), n, nil

	case KindPreferred:
		base, _ := f.grounded()
		cands, err := f.enumerateConflictFree(ctx, base, f.freeArguments(base))
		if err != nil {
			return nil, 0, err
		}
		adm, err := f.filterParallel(ctx, cands, f.admissible)
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, maximalBySubset(adm)), len(cands), nil

	case KindStable:
		base, _ := f.grounded()
		cands, err := f.enumerateConflictFree(ctx, base, f.freeArguments(base))
		if err != nil {
			return nil, 0, err
		}
		st, err := f.filterParallel(ctx, cands, f.stable)
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, st), len(cands), nil

	case KindStage:
		cands, err := f.enumerateConflictFree(ctx, newArgset(f.n), f.allCandidates())
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, f.maximalByRange(cands)), len(cands), nil

	case KindSemiStable:
		sets, n, err := f.completeSets(ctx)
		if err != nil {
			return nil, 0, err
		}
		return f.family(kind, f.maximalByRange(sets)), n, nil

	default:
		return nil, 0, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// completeSets generates the complete family as bitsets. Every complete
// extension contains the grounded extension, so candidates extend it.
func (f *frame) completeSets(ctx context.Context) ([]argset, int, error) {
	base, _ := f.grounded()
	cands, err := f.enumerateConflictFree(ctx, base, f.freeArguments(base))
	if err != nil {
		return nil, 0, err
	}
	sets, err := f.filterParallel(ctx, cands, f.complete)
	if err != nil {
		return nil, 0, err
	}
	return sets, len(cands), nil
}

// family converts bitsets into a deterministically ordered Family.
func (f *frame) family(kind Kind, sets []argset) *Family {
	fam := &Family{Kind: kind, Extensions: make([]Extension, 0, len(sets))}
	idx := make([][]int, len(sets))
	for i, s := range sets {
		idx[i] = s.members()
	}
	order := make([]int, len(sets))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lessIndexSeq(idx[order[a]], idx[order[b]])
	})
	for _, i := range order {
		fam.Extensions = append(fam.Extensions, f.extension(sets[i]))
	}
	return fam
}

// lessIndexSeq orders index sequences lexicographically.
func lessIndexSeq(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
