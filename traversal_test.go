// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRejectsUnprunedTree(t *testing.T) {
	tr := fixedQuadtree()
	tr.NBoxes = 0

	_, err := Build(tr)
	if !errors.Is(err, ErrNotPruned) {
		t.Fatalf("Build() error = %v, want wrapping ErrNotPruned", err)
	}
}

func TestBuildRejectsNegativeWellSepIsNAway(t *testing.T) {
	builder := NewBuilder[int32, float64](Config{WellSepIsNAway: -1})
	_, err := builder.Build(fixedQuadtree())
	if err == nil {
		t.Fatal("Build() with WellSepIsNAway < 1 must fail")
	}
}

func TestBuildFixtureEndToEnd(t *testing.T) {
	tr := fixedQuadtree()
	info, err := Build(tr)
	require.NoError(t, err)
	require.NotNil(t, info)

	wantLeaves, wantParents := splitLeavesParents(tr)
	require.Equal(t, wantLeaves, info.Leaves)
	require.Equal(t, wantParents, info.Parents)

	require.Equal(t, tr.NLevels+1, len(info.ParentBoxLevelStarts))
	require.Equal(t, int(tr.NBoxes)+1, len(info.Colleagues.Starts))
	require.Equal(t, len(wantLeaves)+1, len(info.NeighborLeaves.Starts))
	require.Equal(t, int(tr.NBoxes)+1, len(info.SepSiblings.Starts))
	require.Equal(t, len(info.SepSmallerNonsiblings.Lists), len(info.SepBiggerNonsiblings.Lists))
}

func TestBuildSeparatedEndToEnd(t *testing.T) {
	tr := separatedQuadtree()
	info, err := Build(tr)
	require.NoError(t, err)

	// Cross-check against directly-invoked stage functions, the same way
	// the staged pipeline itself would compute them.
	colleagues := buildColleagues(tr, newTestStackFactory(tr.NLevels))
	require.Equal(t, colleagues, info.Colleagues)

	sepSiblings := buildSepSiblings(tr, colleagues)
	require.Equal(t, sepSiblings, info.SepSiblings)
}

func TestBuildColleaguesSymmetricOnRandomTrees(t *testing.T) {
	prng := rand.New(rand.NewPCG(11, 11))

	for trial := range 15 {
		rt := genRandTree(prng, 2, 150, 6)
		tr := toBoxtree(rt)

		info, err := Build(tr)
		if err != nil {
			t.Fatalf("trial %d: Build() error: %v", trial, err)
		}

		var zero int32
		for b := zero; b < tr.NBoxes; b++ {
			for _, c := range listFor(info.Colleagues, b) {
				if c == b {
					t.Fatalf("trial %d: box %d lists itself as a colleague", trial, b)
				}
				if !slices.Contains(listFor(info.Colleagues, c), b) {
					t.Fatalf("trial %d: colleague relation not symmetric between %d and %d", trial, b, c)
				}
			}
		}
	}
}

func TestBuildIdempotentOnSameTree(t *testing.T) {
	tr := separatedQuadtree()

	info1, err := Build(tr)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	info2, err := Build(tr)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	require.Equal(t, info1, info2)
}

func TestBuildNeverMutatesTree(t *testing.T) {
	tr := separatedQuadtree()
	before := *tr // shallow copy: slices still alias, but top-level scalars are captured

	if _, err := Build(tr); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if tr.NBoxes != before.NBoxes || tr.NLevels != before.NLevels || tr.Dimensions != before.Dimensions {
		t.Fatal("Build mutated the tree's scalar fields")
	}
}
