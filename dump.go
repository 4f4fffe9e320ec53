// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"fmt"
	"io"
	"strings"
)

// DumpString renders info as a human-readable listing, useful during
// development and debugging (adapted from the teacher's node dumper,
// which renders a routing trie depth-first with an indent-per-depth
// convention). The listing here is flat: a parents section and a leaves
// section, one box per line at a fixed indent, not indented by box level.
func DumpString[ID Int](info *TraversalInfo[ID]) string {
	w := new(strings.Builder)
	Dump(w, info)
	return w.String()
}

// Dump writes info to w: one line per parent box showing its
// well-separated-sibling count, followed by one line per leaf showing its
// neighbor-leaf and separated-smaller-nonsibling counts.
func Dump[ID Int](w io.Writer, info *TraversalInfo[ID]) {
	fmt.Fprintf(w, "parents(#%d):\n", len(info.Parents))
	for _, p := range info.Parents {
		lo, hi := info.SepSiblings.Starts[p], info.SepSiblings.Starts[p+1]
		fmt.Fprintf(w, "  box %v: sep_siblings(#%d)\n", p, hi-lo)
	}

	fmt.Fprintf(w, "leaves(#%d):\n", len(info.Leaves))
	for l, b := range info.Leaves {
		nlo, nhi := info.NeighborLeaves.Starts[l], info.NeighborLeaves.Starts[l+1]
		slo, shi := info.SepSmallerNonsiblings.Starts[l], info.SepSmallerNonsiblings.Starts[l+1]
		fmt.Fprintf(w, "  box %v: neighbor_leaves(#%d) sep_smaller_nonsiblings(#%d)\n", b, nhi-nlo, shi-slo)
	}
}
