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

import "math/bits"

// argset is a fixed-width bitmask over argument indices. All sets inside
// one computation share the same width, so word counts always line up.
type argset []uint64

const wordBits = 64

// newArgset returns an empty set sized for n arguments.
func newArgset(n int) argset {
	return make(argset, (n+wordBits-1)/wordBits)
}

func (s argset) add(i int) {
	s[i/wordBits] |= 1 << (uint(i) % wordBits)
}

func (s argset) remove(i int) {
	s[i/wordBits] &^= 1 << (uint(i) % wordBits)
}

func (s argset) has(i int) bool {
	return s[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

func (s argset) isEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s argset) count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// intersects reports whether s and o share any member.
func (s argset) intersects(o argset) bool {
	for i, w := range s {
		if w&o[i] != 0 {
			return true
		}
	}
	return false
}

// subsetOf reports whether every member of s is in o.
func (s argset) subsetOf(o argset) bool {
	for i, w := range s {
		if w&^o[i] != 0 {
			return false
		}
	}
	return true
}

// properSubsetOf reports whether s is a subset of o and s != o.
func (s argset) properSubsetOf(o argset) bool {
	return s.subsetOf(o) && !s.equal(o)
}

func (s argset) equal(o argset) bool {
	for i, w := range s {
		if w != o[i] {
			return false
		}
	}
	return true
}

// orWith adds all members of o to s in place.
func (s argset) orWith(o argset) {
	for i := range s {
		s[i] |= o[i]
	}
}

func (s argset) clone() argset {
	out := make(argset, len(s))
	copy(out, s)
	return out
}

// members returns the set elements in ascending order.
func (s argset) members() []int {
	out := make([]int, 0, s.count())
	for wi, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+b)
			w &= w - 1
		}
	}
	return out
}
