//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// maxAspirationResearches bounds the aspiration-window widening loop
// before a pass falls back to a full (-inf, +inf) window.
const maxAspirationResearches = 8

// iterativeDeepening walks depth 1..maxDepth, each iteration running a
// full root search under an aspiration window centered on the previous
// iteration's score. An iteration that aborts mid-flight is discarded;
// the result carries the last iteration that ran to completion.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	maxDepth := s.limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	if s.limits.Mate > 0 {
		floor := 2*s.limits.Mate + 1
		if floor > maxDepth {
			maxDepth = floor
		}
	}

	rootMoves := s.mg[0].GenerateLegalMoves(p, movegen.GenAll).Clone()
	if err := s.mg[0].Err(); err != nil {
		s.log.Error(err.Error())
	}
	if s.limits.Moves.Len() > 0 {
		restrictToAllowed(rootMoves, &s.limits.Moves)
	}
	s.rootMoves = rootMoves

	result := &Result{}
	if rootMoves.Len() == 0 {
		return result
	}

	var prevScore Value
	for depth := 1; depth <= maxDepth; depth++ {
		if s.tt != nil {
			s.tt.NewGeneration()
		}
		s.hist.ResetKillers()
		s.statistics.CurrentIterationDepth = depth

		score, bestMove, completed := s.searchRootAspirated(p, depth, prevScore)
		if !completed {
			break
		}
		if bestMove != result.BestMove {
			s.statistics.BestMoveChanges++
		}

		prevScore = score
		result.BestMove = bestMove
		result.BestValue = score
		result.SearchDepth = depth
		result.ExtraDepth = s.statistics.CurrentExtraSearchDepth
		result.RootMoves = *s.rootMoves

		s.statistics.CurrentSearchDepth = depth
		s.statistics.CurrentBestRootMove = bestMove
		s.statistics.CurrentBestRootValue = score
		s.sendIterationEndInfo()

		if s.stopFlag {
			break
		}
	}

	result.PonderMove = s.ponderFromPV()
	return result
}

// searchRootAspirated runs one iteration's root search, widening the
// aspiration window around a fail-low/fail-high result until the score
// lands strictly inside (alpha, beta) or the window has been widened to
// the full legal score range.
func (s *Search) searchRootAspirated(p *position.Position, depth int, prevScore Value) (Value, Move, bool) {
	alpha, beta := Value(-ValueInf), Value(ValueInf)
	useAspiration := config.Settings.Search.UseAspiration && depth > 1

	if useAspiration {
		halfWidth := Value(25 + 10*depth)
		alpha, beta = clampWindow(prevScore-halfWidth, prevScore+halfWidth)
	}

	researches := 0
	for {
		score, bestMove, ok := s.rootSearchPass(p, depth, alpha, beta)
		if !ok {
			return ValueZero, MoveNone, false
		}

		if score <= alpha && alpha > -ValueInf {
			researches++
			s.statistics.AspirationResearches++
			if researches > maxAspirationResearches {
				alpha, beta = -ValueInf, ValueInf
				continue
			}
			alpha, beta = clampWindow(widenBelow(score, depth, researches), beta)
			continue
		}
		if score >= beta && beta < ValueInf {
			researches++
			s.statistics.AspirationResearches++
			if researches > maxAspirationResearches {
				alpha, beta = -ValueInf, ValueInf
				continue
			}
			alpha, beta = clampWindow(alpha, widenAbove(score, depth, researches))
			continue
		}

		return score, bestMove, true
	}
}

// widenBelow/widenAbove compute an aspiration-window bound doubling in
// width per research, done in int to avoid overflowing Value's int16
// range before clampWindow pulls the result back into (-ValueInf, ValueInf).
func widenBelow(score Value, depth, researches int) Value {
	widen := (25 + 10*depth) << uint(researches)
	bound := int(score) - widen
	return clampToValueRange(bound)
}

func widenAbove(score Value, depth, researches int) Value {
	widen := (25 + 10*depth) << uint(researches)
	bound := int(score) + widen
	return clampToValueRange(bound)
}

func clampToValueRange(bound int) Value {
	if bound < int(-ValueInf) {
		return -ValueInf
	}
	if bound > int(ValueInf) {
		return ValueInf
	}
	return Value(bound)
}

func clampWindow(alpha, beta Value) (Value, Value) {
	if alpha < -ValueInf {
		alpha = -ValueInf
	}
	if beta > ValueInf {
		beta = ValueInf
	}
	return alpha, beta
}

// rootSearchPass runs one full pass over the root move list under
// (alpha, beta), using the same Principal Variation Search protocol as
// interior nodes. Every move's resulting score is attached back onto the
// move for move-ordering in the next iteration and for MultiPV reporting.
func (s *Search) rootSearchPass(p *position.Position, depth int, alpha, beta Value) (Value, Move, bool) {
	moves := s.rootMoves

	var ttMove Move = MoveNone
	if s.tt != nil && config.Settings.Search.UseTT {
		if e := s.tt.Probe(p.ZobristKey()); e != nil {
			ttMove = e.Move()
		}
	}
	s.scoreMoves(moves, p.NextPlayer(), ttMove, 0, MoveNone)

	bestScore := Value(-ValueInf)
	bestMove := MoveNone

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		s.statistics.CurrentRootMoveIndex = i
		s.statistics.CurrentRootMove = m

		p.DoMove(m)
		score, ok := s.searchMove(p, i, depth, depth-1, 0, alpha, beta, m, m.IsQuiet(), true)
		p.UndoMove()
		if !ok {
			return ValueZero, MoveNone, false
		}

		scored := m
		scored.SetValue(score)
		moves.Set(i, scored)

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.updatePV(0, m)
			}
		}
		if alpha >= beta {
			break
		}
	}

	moves.Sort()
	return bestScore, bestMove, true
}

// ponderFromPV returns the second move of the current principal variation
// (the reply the engine expects), or MoveNone if the PV is too short.
func (s *Search) ponderFromPV() Move {
	if s.pv[0] != nil && s.pv[0].Len() > 1 {
		return s.pv[0].At(1)
	}
	return MoveNone
}

// restrictToAllowed filters moves down to only those matching an entry in
// allowed (compared ignoring any attached sort value), implementing the
// UCI "go searchmoves" restriction.
func restrictToAllowed(moves *moveslice.MoveSlice, allowed *moveslice.MoveSlice) {
	moves.Filter(func(i int) bool {
		m := moves.At(i).MoveOf()
		for j := 0; j < allowed.Len(); j++ {
			if allowed.At(j).MoveOf() == m {
				return true
			}
		}
		return false
	})
}
