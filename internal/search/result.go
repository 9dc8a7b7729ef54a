//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"time"

	"github.com/jwkunz/plumgo/internal/moveslice"
	. "github.com/jwkunz/plumgo/internal/types"
)

// Result is the outcome of one StartSearch call: the move to play, the
// move to ponder on, and enough metadata to report a UCI bestmove/info
// line.
type Result struct {
	BestMove    Move
	PonderMove  Move
	BestValue   Value
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	BookMove    bool
	Pv          moveslice.MoveSlice
	RootMoves   moveslice.MoveSlice
}

func (r *Result) String() string {
	return out.Sprintf("bestmove %s ponder %s value %s depth %d seldepth %d time %d book %t",
		r.BestMove.StringUci(), r.PonderMove.StringUci(), r.BestValue.String(),
		r.SearchDepth, r.ExtraDepth, r.SearchTime.Milliseconds(), r.BookMove)
}
