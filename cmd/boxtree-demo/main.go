// Copyright (c) 2025 The Boxtree Authors
// SPDX-License-Identifier: MIT

// Command boxtree-demo builds a random synthetic tree and runs the
// interaction-list builder against it, reporting per-stage timings. It is
// not part of the library's public API.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Python-Repository-Hub/boxtree"
	"github.com/Python-Repository-Hub/boxtree/internal/randtree"
)

func main() {
	app := &cli.App{
		Name:  "boxtree-demo",
		Usage: "build a random tree and time the interaction-list builder",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "dimensions", Aliases: []string{"d"}, Value: 3},
			&cli.IntFlag{Name: "boxes", Aliases: []string{"n"}, Value: 200_000},
			&cli.IntFlag{Name: "max-levels", Aliases: []string{"l"}, Value: 12},
			&cli.Uint64Flag{Name: "seed", Aliases: []string{"s"}, Value: 42},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.StampMicro}).
		Level(level).
		With().Timestamp().Logger()

	seed := c.Uint64("seed")
	prng := rand.New(rand.NewPCG(seed, seed))

	ts := time.Now()
	rt := randtree.Gen(prng, c.Int("dimensions"), c.Int("boxes"), c.Int("max-levels"))
	logger.Info().
		Int("nboxes", int(rt.NBoxes)).
		Int("nlevels", rt.NLevels).
		Dur("elapsed", time.Since(ts)).
		Msg("generated random tree")

	tree := toDemoTree(rt)

	builder := boxtree.NewBuilder[int32, float64](boxtree.Config{})
	builder.Logger = &logger

	ts = time.Now()
	info, err := builder.Build(tree)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	logger.Info().
		Int("nleaves", len(info.Leaves)).
		Int("nparents", len(info.Parents)).
		Int("colleague_entries", len(info.Colleagues.Lists)).
		Int("list1_entries", len(info.NeighborLeaves.Lists)).
		Int("list2_entries", len(info.SepSiblings.Lists)).
		Int("list3_entries", len(info.SepSmallerNonsiblings.Lists)).
		Int("list4_entries", len(info.SepBiggerNonsiblings.Lists)).
		Dur("elapsed", time.Since(ts)).
		Msg("built interaction lists")

	return nil
}

// toDemoTree adapts randtree's dependency-free mirror into a real
// boxtree.Tree; kept local to the demo binary since the library itself
// never constructs trees (see boxtree/doc.go).
func toDemoTree(rt *randtree.Tree) *boxtree.Tree[int32, float64] {
	flags := make([]boxtree.Flags, len(rt.BoxFlags))
	for i, f := range rt.BoxFlags {
		flags[i] = boxtree.Flags(f)
	}

	return &boxtree.Tree[int32, float64]{
		Dimensions:    rt.Dimensions,
		NLevels:       rt.NLevels,
		NBoxes:        rt.NBoxes,
		AlignedNBoxes: rt.AlignedNBoxes,
		RootExtent:    rt.RootExtent,
		BoxCenters:    rt.BoxCenters,
		BoxLevels:     rt.BoxLevels,
		BoxParentIDs:  rt.BoxParentIDs,
		BoxChildIDs:   rt.BoxChildIDs,
		BoxFlags:      flags,
		LevelStarts:   rt.LevelStarts,
	}
}
