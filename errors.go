// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Build]. All of them abort the pipeline
// before (or instead of) returning a [TraversalInfo]; no partial result is
// ever produced.
var (
	// ErrNotPruned is returned when the input tree is not pruned, i.e. box
	// ids are not compact or trailing slots are empty.
	ErrNotPruned = errors.New("boxtree: tree must be pruned for traversal generation")

	// ErrTreeTooDeep is returned when the configured walk-stack depth
	// (NLEVELS) is insufficient for the tree's actual depth. This is a
	// configuration bug, not a data-dependent failure.
	ErrTreeTooDeep = errors.New("boxtree: tree depth exceeds configured walk stack capacity")

	// ErrOutOfMemory wraps an allocation failure while growing a ragged
	// list's backing storage.
	ErrOutOfMemory = errors.New("boxtree: out of memory while allocating traversal output")
)

// invalidInputError decorates ErrNotPruned (and similar precondition
// failures) with the offending detail.
func invalidInputError(detail string) error {
	return fmt.Errorf("%w: %s", ErrNotPruned, detail)
}
