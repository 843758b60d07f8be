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

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	g := mustBuild(t, []string{"A1", "A2", "A3"}, []Attack{
		{Attacker: "A2", Target: "A1"},
		{Attacker: "A3", Target: "A1"},
		{Attacker: "A1", Target: "A1"},
	})

	parsed, err := ParseString(EncodeString(g))
	require.NoError(t, err)

	assert.ElementsMatch(t, g.ArgumentIDs(), parsed.ArgumentIDs())
	assert.ElementsMatch(t, g.Attacks(), parsed.Attacks())
}

func TestParseOrderIndependent(t *testing.T) {
	// Attack lines may precede the declarations they reference.
	doc := strings.Join([]string{
		"# framework with a forward reference",
		"A2,A1",
		"A1",
		"",
		"A2",
	}, "\n")

	g, err := ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumArguments())
	assert.Equal(t, []Attack{{Attacker: "A2", Target: "A1"}}, g.Attacks())
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"too many commas", "A1\nA2\nA1,A2,A3\n"},
		{"dangling attack", "A1\nA1,missing\n"},
		{"no arguments", "# only a comment\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.doc)
			assert.Error(t, err)
		})
	}
}

func TestParseTrimsAttackFields(t *testing.T) {
	g, err := ParseString("A1\nA2\nA2, A1\n")
	require.NoError(t, err)
	assert.Equal(t, []Attack{{Attacker: "A2", Target: "A1"}}, g.Attacks())
}

func TestEncodeDOT(t *testing.T) {
	g := mustBuild(t, []string{"A1", "A2"}, []Attack{{Attacker: "A2", Target: "A1"}})

	var sb strings.Builder
	require.NoError(t, EncodeDOT(&sb, g, "test"))
	out := sb.String()

	assert.Contains(t, out, `digraph "test"`)
	assert.Contains(t, out, `"A2" -> "A1";`)

	// Deterministic edge ordering.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, sort.StringsAreSorted(edgeLines(lines)))
}

func edgeLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.Contains(l, "->") {
			out = append(out, l)
		}
	}
	return out
}
