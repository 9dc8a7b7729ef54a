//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package engine

import (
	"time"

	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/search"
)

// GoParams carries the UCI "go" command's sub-parameters, independent of
// the wire format that produced them.
type GoParams struct {
	Depth int

	MoveTime time.Duration

	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int

	SearchMoves moveslice.MoveSlice

	Nodes uint64
	Mate  int

	Ponder   bool
	Infinite bool
}

// resolveLimits turns GoParams into search.Limits, applying the
// precedence rules exactly: movetime beats nodes beats mate beats clocks,
// and a mode that wins the precedence suppresses the others' effect on
// time/depth shaping rather than merely taking priority among equals.
func resolveLimits(g GoParams) *search.Limits {
	limits := search.NewLimits()
	limits.Depth = g.Depth
	limits.Moves = g.SearchMoves
	limits.Ponder = g.Ponder
	limits.Infinite = g.Infinite

	switch {
	case g.MoveTime > 0:
		limits.MoveTime = g.MoveTime
		limits.TimeControl = true

	case g.Nodes > 0:
		limits.Nodes = g.Nodes

	case g.Mate > 0:
		limits.Mate = g.Mate

	default:
		limits.WhiteTime, limits.BlackTime = g.WhiteTime, g.BlackTime
		limits.WhiteInc, limits.BlackInc = g.WhiteInc, g.BlackInc
		limits.MovesToGo = g.MovesToGo
		if g.WhiteTime > 0 || g.BlackTime > 0 {
			limits.TimeControl = true
		} else if limits.Depth <= 0 {
			// Neither an explicit limit nor a usable clock: fall back to
			// the engine's configured default depth (spec.md §4.10
			// precedence rule 4).
			limits.Depth = config.Settings.Search.DefaultDepth
		}
	}

	return limits
}
