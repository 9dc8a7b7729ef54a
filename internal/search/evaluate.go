//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// contempt returns the draw score for p, biased against draws found in a
// clearly winning static evaluation and in favor of draws found in a
// clearly losing one, so the engine does not shy away from repeating a
// lost position or blunder away a won one into a draw.
func contempt(staticEval Value) Value {
	switch {
	case staticEval >= 180:
		penalty := clampValue(staticEval/2, 0, 1200)
		v := -(160 + penalty)
		if staticEval > 900 {
			v -= 200
		}
		return v
	case staticEval <= -180:
		bonus := clampValue(-staticEval/8, 0, 240)
		return 45 + bonus
	default:
		if staticEval >= 0 {
			return -18
		}
		return 9
	}
}

func clampValue(v, lo, hi Value) Value {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// evaluate returns p's static evaluation from the perspective of the side
// to move, counting it in the search statistics.
func (s *Search) evaluate(p *position.Position) Value {
	s.statistics.Evaluations++
	return s.eval.Evaluate(p)
}

// drawScore checks the three draw conditions search must recognize before
// falling through to a full evaluation: threefold repetition, the 50-move
// rule and insufficient material.
func (s *Search) drawScore(p *position.Position) (Value, bool) {
	if p.CheckRepetitions() >= 3 || p.HalfMoveClock() >= 100 || p.HasInsufficientMaterial() {
		return contempt(s.evaluate(p)), true
	}
	return ValueZero, false
}
