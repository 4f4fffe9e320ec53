// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

// parentBoxLevelStarts implements spec.md §4.4: parent_box_level_starts[l]
// is the first index i in parents such that box_levels[parents[i]] >= l.
//
// Step 1 mirrors the source's extract_level_starts elementwise kernel: for
// each adjacent pair (parents[i-1], parents[i]), if the pair straddles a
// level_starts[l] boundary, record parent_box_level_starts[l] = i.
// Step 2 fixes index 0 to 0 and sweeps from the deepest level upward,
// replacing each unfilled entry (initially len(parents)) with
// min(entry, next) so the result is monotone across empty levels.
func parentBoxLevelStarts[ID Int, C Float](t *Tree[ID, C], parents []ID) []ID {
	n := len(parents)
	starts := make([]ID, t.NLevels+1)
	for l := range starts {
		starts[l] = ID(n)
	}

	for i := 1; i < n; i++ {
		myBoxID := parents[i]
		prevBoxID := parents[i-1]
		myLevel := t.BoxLevels[myBoxID]
		myLevelStart := t.LevelStarts[myLevel]

		if prevBoxID < myLevelStart && myLevelStart <= myBoxID {
			starts[myLevel] = ID(i)
		}
	}

	starts[0] = 0

	prevStart := ID(n)
	for l := t.NLevels - 1; l >= 0; l-- {
		if starts[l] > prevStart {
			starts[l] = prevStart
		}
		prevStart = starts[l]
	}
	starts[0] = 0

	return starts
}
