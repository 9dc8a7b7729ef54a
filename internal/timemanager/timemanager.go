//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package timemanager maps a UCI go command's clock state to a per-move
// time budget. Two strategies are supported: a flat Fraction20 split of
// the remaining clock, and an Adaptive strategy that accounts for
// increment, the number of moves left to the next time control, and game
// phase.
package timemanager

import (
	"time"

	"github.com/jwkunz/plumgo/internal/position"
)

// Strategy selects which formula ResolveBudget applies.
type Strategy string

const (
	// Fraction20 spends a flat 1/20th of the remaining clock per move.
	Fraction20 Strategy = "Fraction20"
	// Adaptive scales the budget by increment, movestogo and game phase.
	Adaptive Strategy = "Adaptive"
)

// Clock holds one side's remaining time, increment and (optional) moves
// left to the next time control.
type Clock struct {
	Remaining time.Duration
	Increment time.Duration
	MovesToGo int // 0 means unknown
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// expectedMovesLeft returns a phase-dependent default used whenever the
// UCI go command did not supply movestogo.
func expectedMovesLeft(p *position.Position) int {
	switch {
	case p.GamePhase() >= 20:
		return 40
	case p.GamePhase() >= 10:
		return 28
	default:
		return 18
	}
}

// ResolveBudget returns the time budget for one move of search, given the
// position (for game-phase-dependent defaults), the side-to-move's clock,
// and the chosen strategy. A zero Clock.Remaining means no time control is
// in effect; callers should not call ResolveBudget in that case.
func ResolveBudget(p *position.Position, clock Clock, strategy Strategy) time.Duration {
	if clock.Remaining <= 0 {
		return 0
	}

	if strategy == Fraction20 {
		budget := clock.Remaining / 20
		if budget < time.Millisecond {
			budget = time.Millisecond
		}
		return budget
	}

	expected := clock.MovesToGo
	if expected <= 0 {
		expected = expectedMovesLeft(p)
	}

	reserve := clampDuration(clock.Remaining/25, 100*time.Millisecond, clock.Remaining-time.Millisecond)
	usable := clock.Remaining - reserve
	base := usable / time.Duration(expected)
	bonus := (clock.Increment * 3) / 4
	budget := base + bonus

	if clock.Remaining < 2000*time.Millisecond {
		budget += clampDuration(clock.Remaining/10, 0, 200*time.Millisecond)
	}

	minBudget := 15 * time.Millisecond
	if clock.Remaining < 1000*time.Millisecond {
		minBudget = 5 * time.Millisecond
	}
	maxBudget := clock.Remaining / 4

	return clampDuration(budget, minBudget, maxBudget)
}
