// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

// Package ragged implements the two-pass "count, scan, fill" primitive
// shared by every list-construction stage in boxtree (spec.md §4.10):
// run a per-index generator once to count emissions, exclusive-scan the
// counts into starts[n+1], then run the generator again writing directly
// into its reserved slice positions.
package ragged

// Int is the id type constraint, mirrored from the root package to avoid
// an import cycle (this package has no dependency on boxtree itself).
type Int interface {
	~int32 | ~int64
}

// List is the (starts, lists) pair described in spec.md §3: for input
// index i, entries occupy the half-open range [Starts[i], Starts[i+1]).
type List[ID Int] struct {
	Starts []ID
	Lists  []ID
}

// Build runs generate once per index in [0, n) to count emissions, then
// again to fill. Within generate(i, emit), emit(v) appends v to the
// output list for index i;
// during the count pass emit only needs to be called once per emission,
// its value argument is ignored.
//
// Build is safe to call with n == 0; it returns a List with Starts of
// length 1 ([]ID{0}) and an empty Lists slice.
func Build[ID Int](n ID, generate func(i ID, emit func(v ID))) List[ID] {
	counts := make([]ID, n)
	for i := ID(0); i < n; i++ {
		generate(i, func(ID) { counts[i]++ })
	}

	starts := make([]ID, n+1)
	var sum ID
	for i := ID(0); i < n; i++ {
		starts[i] = sum
		sum += counts[i]
	}
	starts[n] = sum

	lists := make([]ID, sum)
	cursor := make([]ID, n)
	copy(cursor, starts[:n])

	for i := ID(0); i < n; i++ {
		generate(i, func(v ID) {
			lists[cursor[i]] = v
			cursor[i]++
		})
	}

	return List[ID]{Starts: starts, Lists: lists}
}

// BuildPaired runs a generator that emits two parallel values per call
// (spec.md §4.8/§4.10: List 3's sep_smaller_nonsiblings_origins and
// sep_smaller_nonsiblings "count sharing" contract — one counting pass
// determines both list lengths, which are always equal and whose entries
// correspond index-for-index).
func BuildPaired[ID Int](n ID, generate func(i ID, emit func(origin, target ID))) (origins, targets List[ID]) {
	counts := make([]ID, n)
	for i := ID(0); i < n; i++ {
		generate(i, func(ID, ID) { counts[i]++ })
	}

	starts := make([]ID, n+1)
	var sum ID
	for i := ID(0); i < n; i++ {
		starts[i] = sum
		sum += counts[i]
	}
	starts[n] = sum

	originLists := make([]ID, sum)
	targetLists := make([]ID, sum)
	cursor := make([]ID, n)
	copy(cursor, starts[:n])

	for i := ID(0); i < n; i++ {
		generate(i, func(origin, target ID) {
			originLists[cursor[i]] = origin
			targetLists[cursor[i]] = target
			cursor[i]++
		})
	}

	originStarts := make([]ID, n+1)
	copy(originStarts, starts)
	targetStarts := make([]ID, n+1)
	copy(targetStarts, starts)

	return List[ID]{Starts: originStarts, Lists: originLists}, List[ID]{Starts: targetStarts, Lists: targetLists}
}
