// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

// Package boxtree computes Fast Multipole Method (FMM) interaction lists
// for an adaptive, pruned spatial tree of boxes in 1, 2, or 3 dimensions.
//
// Given a finished tree (see [Tree]), [Build] partitions boxes into leaves
// and parents and computes, per box or per leaf, the neighborhoods required
// to evaluate near- and far-field interactions: colleagues, List 1
// (neighbor leaves), List 2 (well-separated siblings), List 3 (separated
// smaller non-siblings) and List 4 (separated bigger non-siblings, the
// transpose of List 3).
//
// boxtree does not build the tree itself, run any FMM numerical kernel, or
// perform distributed-memory orchestration; it consumes a tree produced
// elsewhere and returns a read-only [TraversalInfo].
package boxtree
