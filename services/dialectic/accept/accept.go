// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package accept answers acceptance questions over computed extension
// families.
//
// Everything here is a pure read-side computation: families are already
// computed, and no fixed-point work happens. Credulous acceptance asks
// "is the target in at least one extension", skeptical asks "is it in
// every extension". For the grounded kind the two coincide, since the
// family always has exactly one extension.
package accept

import (
	"github.com/AleutianAI/dialectica/services/dialectic/semantics"
)

// Mode selects between credulous and skeptical acceptance.
type Mode int

const (
	// ModeCredulous accepts membership in at least one extension.
	ModeCredulous Mode = iota

	// ModeSkeptical requires membership in every extension. Over an
	// empty family this is vacuously true; callers that want a
	// quantified answer instead should use Cover.
	ModeSkeptical
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeCredulous:
		return "credulous"
	case ModeSkeptical:
		return "skeptical"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "credulous":
		return ModeCredulous, true
	case "skeptical":
		return ModeSkeptical, true
	default:
		return 0, false
	}
}

// Coverage quantifies how many extensions of a family contain a target.
type Coverage struct {
	// Contained is the number of extensions containing the target.
	Contained int `json:"contained"`

	// Total is the number of extensions in the family.
	Total int `json:"total"`

	// Ratio is Contained/Total, or 0 for an empty family.
	Ratio float64 `json:"ratio"`
}

// Cover counts the extensions containing the target.
func Cover(family *semantics.Family, target string) Coverage {
	c := Coverage{Total: len(family.Extensions)}
	for _, ext := range family.Extensions {
		if ext.Contains(target) {
			c.Contained++
		}
	}
	if c.Total > 0 {
		c.Ratio = float64(c.Contained) / float64(c.Total)
	}
	return c
}

// Accepted answers a membership question under the given mode.
func Accepted(family *semantics.Family, target string, mode Mode) bool {
	cov := Cover(family, target)
	switch mode {
	case ModeCredulous:
		return cov.Contained > 0
	case ModeSkeptical:
		return cov.Contained == cov.Total
	default:
		return false
	}
}

// Credulous reports whether the target is in at least one extension.
func Credulous(family *semantics.Family, target string) bool {
	return Accepted(family, target, ModeCredulous)
}

// Skeptical reports whether the target is in every extension.
func Skeptical(family *semantics.Family, target string) bool {
	return Accepted(family, target, ModeSkeptical)
}
