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
)

// Limits carries every constraint a UCI "go" command may place on a
// search: depth/node/mate caps, a restricted move list, and clock-based
// time control.
type Limits struct {
	Infinite bool
	Ponder   bool
	Mate     int

	Depth int
	Nodes uint64
	Moves moveslice.MoveSlice

	TimeControl bool
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration
	MovesToGo   int
}

// NewLimits returns a zero-value Limits (no time control, no depth cap).
func NewLimits() *Limits {
	return &Limits{}
}

// TimeManaged reports whether the clock, rather than an explicit move-time
// budget, drives this search's time allocation.
func (l *Limits) TimeManaged() bool {
	return l.TimeControl && l.MoveTime == 0
}
