// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

package boxtree

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Python-Repository-Hub/boxtree/internal/ragged"
	"github.com/Python-Repository-Hub/boxtree/internal/walk"
)

// Config carries builder-wide options. See spec.md §6 and SPEC_FULL.md §13.
type Config struct {
	// WellSepIsNAway is accepted for forward compatibility with the
	// source's constructor argument of the same name; it is validated but
	// does not otherwise alter the algorithm (default 1, "one box away").
	WellSepIsNAway int
}

// RaggedList re-exports the shared ragged-list shape so callers never need
// to import internal/ragged directly.
type RaggedList[ID Int] = ragged.List[ID]

// TraversalInfo is the builder's output (spec.md §3, §6). It is produced
// once, never mutated afterwards, and shares no storage with the Tree it
// was built from.
type TraversalInfo[ID Int] struct {
	Leaves               []ID
	Parents              []ID
	ParentBoxLevelStarts []ID

	Colleagues            RaggedList[ID]
	NeighborLeaves        RaggedList[ID]
	SepSiblings           RaggedList[ID]
	SepSmallerNonsiblings RaggedList[ID]
	SepBiggerNonsiblings  RaggedList[ID]
}

// Builder builds a TraversalInfo from a Tree. The zero value is ready to
// use; Logger defaults to a disabled logger.
type Builder[ID Int, C Float] struct {
	Config Config
	Logger *zerolog.Logger
}

// NewBuilder returns a Builder with the given configuration. cfg.WellSepIsNAway
// defaults to 1 when zero.
func NewBuilder[ID Int, C Float](cfg Config) *Builder[ID, C] {
	if cfg.WellSepIsNAway == 0 {
		cfg.WellSepIsNAway = 1
	}
	return &Builder[ID, C]{Config: cfg}
}

// Build runs the full pipeline described in spec.md §2 against tree and
// returns its TraversalInfo. Build never mutates tree.
func Build[ID Int, C Float](tree *Tree[ID, C]) (*TraversalInfo[ID], error) {
	return NewBuilder[ID, C](Config{}).Build(tree)
}

func (b *Builder[ID, C]) logger() *zerolog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	disabled := zerolog.Nop()
	return &disabled
}

func (b *Builder[ID, C]) workers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// Build implements the six-stage pipeline (spec.md §2). Errors abort the
// pipeline before any TraversalInfo is returned (spec.md §5, §7).
func (b *Builder[ID, C]) Build(tree *Tree[ID, C]) (info *TraversalInfo[ID], err error) {
	if b.Config.WellSepIsNAway == 0 {
		b.Config.WellSepIsNAway = 1
	}
	if b.Config.WellSepIsNAway < 1 {
		return nil, invalidInputError("well_sep_is_n_away must be >= 1")
	}

	defer func() {
		if r := recover(); r != nil {
			if r == ErrTreeTooDeep {
				err = ErrTreeTooDeep
				return
			}
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %v", ErrOutOfMemory, e)
				return
			}
			panic(r)
		}
	}()

	if err := tree.validate(); err != nil {
		return nil, err
	}

	log := b.logger()
	pool := newStackPool[ID](walk.NLevels(tree.NLevels))
	workers := b.workers()

	// Stage 1: leaves/parents split.
	stageStart := time.Now()
	leaves, parents := splitLeavesParents(tree)
	log.Debug().
		Int("nleaves", len(leaves)).Int("nparents", len(parents)).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: leaves/parents split")

	// Stage 2: parent level starts.
	stageStart = time.Now()
	levelStarts := parentBoxLevelStarts(tree, parents)
	log.Debug().
		Int("nlevels", tree.NLevels).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: parent level starts")

	// Stage 3: colleagues.
	stageStart = time.Now()
	colleagues := b.parallelRagged(tree.NBoxes, workers, pool, func(t *Tree[ID, C], s *walk.Stack[ID], box ID, emit func(ID)) {
		colleaguesFor(t, s, box, emit)
	}, tree)
	log.Debug().
		Int("nentries", len(colleagues.Lists)).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: colleagues")

	// Stage 4: List 1 (neighbor leaves).
	stageStart = time.Now()
	neighborLeaves := b.parallelRagged(ID(len(leaves)), workers, pool, func(t *Tree[ID, C], s *walk.Stack[ID], l ID, emit func(ID)) {
		neighborLeavesFor(t, s, leaves, l, emit)
	}, tree)
	log.Debug().
		Int("nentries", len(neighborLeaves.Lists)).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: list 1 (neighbor leaves)")

	// Stage 5: List 2 (well-separated siblings) -- depends on colleagues.
	stageStart = time.Now()
	sepSiblings := b.parallelRagged(tree.NBoxes, workers, pool, func(t *Tree[ID, C], _ *walk.Stack[ID], box ID, emit func(ID)) {
		sepSiblingsFor(t, colleagues, box, emit)
	}, tree)
	log.Debug().
		Int("nentries", len(sepSiblings.Lists)).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: list 2 (well-separated siblings)")

	// Stage 6a: List 3 (separated smaller non-siblings) -- depends on colleagues and leaves.
	stageStart = time.Now()
	origins, targets := b.parallelPairedRagged(ID(len(leaves)), workers, pool, func(t *Tree[ID, C], s *walk.Stack[ID], l ID, emit func(origin, target ID)) {
		sepSmallerNonsiblingsFor(t, s, leaves, colleagues, l, emit)
	}, tree)

	// Barrier: List 4 is the transpose of List 3 and must wait for it in full.
	sepBiggerNonsiblings := buildSepBiggerNonsiblings(tree.NBoxes, targets.Lists, origins.Lists)
	log.Debug().
		Int("list3_entries", len(targets.Lists)).
		Int("list4_entries", len(sepBiggerNonsiblings.Lists)).
		Dur("elapsed", time.Since(stageStart)).
		Msg("boxtree: list 3 + list 4 (transpose)")

	return &TraversalInfo[ID]{
		Leaves:                leaves,
		Parents:               parents,
		ParentBoxLevelStarts:  levelStarts,
		Colleagues:            colleagues,
		NeighborLeaves:        neighborLeaves,
		SepSiblings:           sepSiblings,
		SepSmallerNonsiblings: targets,
		SepBiggerNonsiblings:  sepBiggerNonsiblings,
	}, nil
}

// parallelRagged is the data-parallel realization of spec.md §4.10/§5: it
// shards [0, n) across `workers` goroutines for the count pass, barriers
// (errgroup.Group.Wait), computes offsets sequentially, then shards again
// for the fill pass. Each goroutine pulls a pooled walk stack so repeated
// calls across the same goroutine reuse their stack storage (§5, Resource
// bounds; stackpool.go).
func (b *Builder[ID, C]) parallelRagged(
	n ID, workers int, pool *stackPool[ID],
	gen func(t *Tree[ID, C], s *walk.Stack[ID], i ID, emit func(ID)),
	tree *Tree[ID, C],
) ragged.List[ID] {
	if n == 0 {
		return ragged.List[ID]{Starts: []ID{0}}
	}
	if workers > int(n) {
		workers = int(n)
	}
	if workers < 1 {
		workers = 1
	}

	shard := (int64(n) + int64(workers) - 1) / int64(workers)
	bounds := func(w int) (lo, hi ID) {
		lo = ID(int64(w) * shard)
		hi = ID(int64(w+1) * shard)
		if hi > n {
			hi = n
		}
		return lo, hi
	}

	counts := make([]ID, n)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := bounds(w)
		if lo >= hi {
			continue
		}
		g.Go(func() (rerr error) {
			defer recoverAsError(&rerr)
			s := pool.Get()
			defer pool.Put(s)
			for i := lo; i < hi; i++ {
				gen(tree, s, i, func(ID) { counts[i]++ })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
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

	var g2 errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := bounds(w)
		if lo >= hi {
			continue
		}
		g2.Go(func() (rerr error) {
			defer recoverAsError(&rerr)
			s := pool.Get()
			defer pool.Put(s)
			for i := lo; i < hi; i++ {
				gen(tree, s, i, func(v ID) {
					lists[cursor[i]] = v
					cursor[i]++
				})
			}
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		panic(err)
	}

	return ragged.List[ID]{Starts: starts, Lists: lists}
}

// parallelPairedRagged is parallelRagged's two-output sibling, used by
// List 3's count-sharing generator (spec.md §4.8/§4.10).
func (b *Builder[ID, C]) parallelPairedRagged(
	n ID, workers int, pool *stackPool[ID],
	gen func(t *Tree[ID, C], s *walk.Stack[ID], i ID, emit func(origin, target ID)),
	tree *Tree[ID, C],
) (origins, targets ragged.List[ID]) {
	if n == 0 {
		return ragged.List[ID]{Starts: []ID{0}}, ragged.List[ID]{Starts: []ID{0}}
	}
	if workers > int(n) {
		workers = int(n)
	}
	if workers < 1 {
		workers = 1
	}

	shard := (int64(n) + int64(workers) - 1) / int64(workers)
	bounds := func(w int) (lo, hi ID) {
		lo = ID(int64(w) * shard)
		hi = ID(int64(w+1) * shard)
		if hi > n {
			hi = n
		}
		return lo, hi
	}

	counts := make([]ID, n)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := bounds(w)
		if lo >= hi {
			continue
		}
		g.Go(func() (rerr error) {
			defer recoverAsError(&rerr)
			s := pool.Get()
			defer pool.Put(s)
			for i := lo; i < hi; i++ {
				gen(tree, s, i, func(ID, ID) { counts[i]++ })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
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

	var g2 errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := bounds(w)
		if lo >= hi {
			continue
		}
		g2.Go(func() (rerr error) {
			defer recoverAsError(&rerr)
			s := pool.Get()
			defer pool.Put(s)
			for i := lo; i < hi; i++ {
				gen(tree, s, i, func(origin, target ID) {
					originLists[cursor[i]] = origin
					targetLists[cursor[i]] = target
					cursor[i]++
				})
			}
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		panic(err)
	}

	originStarts := make([]ID, n+1)
	copy(originStarts, starts)
	targetStarts := make([]ID, n+1)
	copy(targetStarts, starts)

	return ragged.List[ID]{Starts: originStarts, Lists: originLists},
		ragged.List[ID]{Starts: targetStarts, Lists: targetLists}
}

// recoverAsError turns a panic inside an errgroup goroutine into a
// returned error, preserving sentinel identity (e.g. ErrTreeTooDeep) when
// the panic value already is one, so the top-level recover in Build can
// still compare it by value.
func recoverAsError(errp *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*errp = e
			return
		}
		*errp = fmt.Errorf("%v", r)
	}
}
