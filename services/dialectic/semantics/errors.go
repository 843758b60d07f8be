// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package semantics computes extension families for argumentation
// frameworks under Dung's semantics.
//
// Supported kinds: conflict-free, admissible, complete, grounded,
// preferred, stable, stage, and semi-stable. Grounded always yields
// exactly one extension; stable may yield zero, which is a valid result
// and not an error.
//
// # Purity
//
// Compute is a pure function of its inputs: no background work, no state
// shared across calls. Concurrent computations over different graphs need
// no coordination. Within one computation, candidate checks for the
// enumerated families may be distributed over worker goroutines; the
// final maximality filters are order-insensitive, and output ordering is
// made deterministic before returning.
//
// # Determinism
//
// Extension members are ordered by argument index, and extensions within
// a family are ordered lexicographically by member index sequence, so
// repeated runs produce identical output.
package semantics

import "errors"

// Sentinel errors for semantics computation.
var (
	// ErrNilGraph is returned when Compute is called without a graph.
	ErrNilGraph = errors.New("nil graph")

	// ErrUnknownKind is returned for a semantics kind outside the closed
	// enumeration. This is a caller error, not a computation failure.
	ErrUnknownKind = errors.New("unknown semantics kind")

	// ErrEnumerationLimit is returned when candidate enumeration exceeds
	// the configured ceiling before the family is fully generated. No
	// partial family is ever returned alongside this error.
	ErrEnumerationLimit = errors.New("candidate enumeration limit exceeded")
)
