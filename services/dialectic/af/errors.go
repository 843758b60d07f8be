// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package af provides the argumentation framework graph model.
//
// The af package contains the immutable representation of an abstract
// argumentation framework: a set of arguments connected by a directed
// "attacks" relation. Self-attacks are legal, and the relation need not be
// symmetric or acyclic.
//
// # Ownership Model
//
// A Graph is constructed once from an argument list and an attack list,
// and is read-only thereafter:
//   - All accessors return copies; callers cannot reach internal slices.
//   - Augmentation (adding defender arguments) produces a NEW Graph via
//     WithDefenders(); the original is never modified.
//
// # Thread Safety
//
// Because a Graph is immutable after construction, it is safe for
// concurrent reads from multiple goroutines without locking.
//
// # Lifecycle
//
// A typical graph lifecycle:
//  1. Build with BuildGraph(ids, attacks)
//  2. Query with Contains(), AttackersOf(), AttackedBy(), etc.
//  3. Optionally derive an augmented graph with WithDefenders()
package af

import "errors"

// Sentinel errors for graph construction and serialization.
var (
	// ErrNoArguments is returned when building a graph from an empty
	// argument list.
	ErrNoArguments = errors.New("graph requires at least one argument")

	// ErrDuplicateArgument is returned when the argument list declares
	// the same identifier twice.
	ErrDuplicateArgument = errors.New("duplicate argument id")

	// ErrUnknownArgument is returned when an attack references an argument
	// that is not declared in the graph. Construction fails immediately;
	// dangling references are never deferred to query time.
	ErrUnknownArgument = errors.New("attack references unknown argument")

	// ErrInvalidArgumentID is returned for empty identifiers or identifiers
	// containing characters reserved by the edge-list serialization
	// (commas, newlines, leading '#').
	ErrInvalidArgumentID = errors.New("invalid argument id")

	// ErrDefenderExists is returned when a defender id collides with an
	// argument already present in the graph.
	ErrDefenderExists = errors.New("defender id already present in graph")

	// ErrDefenderNoTargets is returned when a defender declares no attack
	// targets. A defender that attacks nothing cannot rescue anything.
	ErrDefenderNoTargets = errors.New("defender declares no targets")

	// ErrMalformedLine is returned when parsing an edge-list document that
	// contains a line with more than one comma.
	ErrMalformedLine = errors.New("malformed edge-list line")
)
