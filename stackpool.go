// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"sync"
	"sync/atomic"

	"github.com/Python-Repository-Hub/boxtree/internal/walk"
)

// stackPool is a type-safe wrapper around sync.Pool specialized for
// *walk.Stack[ID] values, adapted from the teacher's pool[V] (pool.go in
// the reference BART implementation), which wraps sync.Pool around
// *node[V] with allocation/live-count telemetry for debugging memory
// reuse under concurrent insert/delete load. Here the pooled resource is
// a per-goroutine walk stack: §5 ("two stacks of NLEVELS entries ...
// tens of bytes" per work item) recommends reuse across work items
// rather than per-box allocation, since a data-parallel stage visits
// thousands to millions of boxes on the same goroutine.
type stackPool[ID Int] struct {
	sync.Pool

	capacity int

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

// newStackPool creates a pool of *walk.Stack[ID] values with the given
// NLEVELS capacity.
func newStackPool[ID Int](capacity int) *stackPool[ID] {
	p := &stackPool[ID]{capacity: capacity}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return walk.NewStack[ID](capacity)
	}
	return p
}

// Get retrieves a *walk.Stack[ID] from the pool, allocating one if needed.
func (p *stackPool[ID]) Get() *walk.Stack[ID] {
	p.currentLive.Add(1)
	return p.Pool.Get().(*walk.Stack[ID])
}

// Put returns a stack to the pool for reuse by a later work item.
func (p *stackPool[ID]) Put(s *walk.Stack[ID]) {
	p.currentLive.Add(-1)
	p.Pool.Put(s)
}

// Stats reports the number of stacks currently checked out and the total
// ever allocated, useful for sizing goroutine counts in benchmarks.
func (p *stackPool[ID]) Stats() (live, total int64) {
	return p.currentLive.Load(), p.totalAllocated.Load()
}
