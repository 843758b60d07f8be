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

// grounded computes the least fixed point of the characteristic function
// starting from the empty set, together with the defense depth of each
// member: the 1-based iteration at which it first entered the fixed
// point. Unattacked arguments enter at depth 1.
//
// The iteration terminates in at most n steps because F is monotonic on
// a finite lattice: each round either adds an argument or reaches the
// fixed point.
func (f *frame) grounded() (argset, []int) {
	depth := make([]int, f.n)
	cur := newArgset(f.n)

	for iter := 1; iter <= f.n; iter++ {
		next := f.characteristic(cur)
		grew := false
		for _, i := range next.members() {
			if depth[i] == 0 {
				depth[i] = iter
				grew = true
			}
		}
		cur = next
		if !grew {
			break
		}
	}
	return cur, depth
}
