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

import "fmt"

// Kind identifies an acceptance criterion. The enumeration is closed:
// values outside it fail with ErrUnknownKind.
type Kind int

const (
	// KindConflictFree accepts sets with no internal attack.
	KindConflictFree Kind = iota

	// KindAdmissible accepts conflict-free sets that defend every member.
	KindAdmissible

	// KindComplete accepts admissible sets containing exactly the
	// arguments they defend.
	KindComplete

	// KindGrounded accepts the least fixed point of the characteristic
	// function. Always exactly one extension.
	KindGrounded

	// KindPreferred accepts subset-maximal admissible sets.
	KindPreferred

	// KindStable accepts conflict-free sets that attack every argument
	// outside themselves. The family may be empty.
	KindStable

	// KindStage accepts conflict-free sets with maximal range.
	KindStage

	// KindSemiStable accepts complete sets with maximal range.
	KindSemiStable

	// numKinds is the total number of kinds (for iteration).
	numKinds
)

// kindNames maps Kind values to their string representations.
var kindNames = map[Kind]string{
	KindConflictFree: "conflict-free",
	KindAdmissible:   "admissible",
	KindComplete:     "complete",
	KindGrounded:     "grounded",
	KindPreferred:    "preferred",
	KindStable:       "stable",
	KindStage:        "stage",
	KindSemiStable:   "semi-stable",
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is inside the closed enumeration.
func (k Kind) Valid() bool {
	return k >= KindConflictFree && k < numKinds
}

// ParseKind converts a string to a Kind.
//
// Accepts the canonical names returned by String. Returns ErrUnknownKind
// for anything else, including "all" (callers wanting every kind use
// ComputeAll).
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// AllKinds returns every Kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, int(numKinds))
	for k := KindConflictFree; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
