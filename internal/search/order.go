//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"github.com/jwkunz/plumgo/internal/moveslice"
	. "github.com/jwkunz/plumgo/internal/types"
)

// scoreMoves attaches a sort value to every move in moves and orders them
// descending: TT move first, then captures/promotions by an approximate
// static-exchange gain, then quiet moves by killer/history/countermove.
func (s *Search) scoreMoves(moves *moveslice.MoveSlice, us Color, ttMove Move, ply int, prevMove Move) {
	var killer1, killer2 Move
	if ply <= MaxDepth {
		killer1, killer2 = s.hist.Killers[ply][0], s.hist.Killers[ply][1]
	}

	prevPiece, prevTo := prevMoveKey(prevMove)
	counter := s.hist.GetCounterMove(prevPiece, prevTo)
	ttMoveOf := ttMove.MoveOf()

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		value := s.moveOrderValue(m, us, ttMoveOf, killer1, killer2, counter, prevPiece, prevTo)
		m.SetValue(value)
		moves.Set(i, m)
	}
	moves.Sort()
}

// scoreTacticalMoves is quiescence's ordering pass: only the capture and
// promotion terms apply since the list is already filtered to those.
func (s *Search) scoreTacticalMoves(moves *moveslice.MoveSlice) {
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		m.SetValue(captureOrPromotionValue(m))
		moves.Set(i, m)
	}
	moves.Sort()
}

func (s *Search) moveOrderValue(m Move, us Color, ttMoveOf Move, killer1, killer2, counter Move, prevPiece PieceType, prevTo Square) Value {
	mv := m.MoveOf()
	if ttMoveOf != MoveNone && mv == ttMoveOf {
		return 1_000_000
	}
	if m.IsCapture() || m.IsPromotion() {
		return captureOrPromotionValue(m)
	}

	var value Value
	switch mv {
	case killer1:
		value = 80_000
	case killer2:
		value = 70_000
	default:
		if counter != MoveNone && mv == counter {
			value = 60_000
		}
	}
	value += Value(s.hist.HistoryScore(us, m.MovedType(), m.To()) / 2)
	value += Value(s.hist.ContinuationScore(us, prevPiece, prevTo, m.MovedType(), m.To()) / 2)
	return value
}

// captureOrPromotionValue scores a capture (including en passant) or a
// promotion; callers only invoke this on moves that are one or the other.
func captureOrPromotionValue(m Move) Value {
	if m.IsCapture() {
		victim := m.CapturedType().ValueOf()
		if m.IsEnPassant() {
			victim = Pawn.ValueOf()
		}
		aggressor := m.MovedType().ValueOf()
		seeEstimate := victim + promotionGain(m) - aggressor
		return 100_000 + 16*victim - aggressor + 4*seeEstimate
	}
	return 90_000 + m.PromotionType().ValueOf()
}

func promotionGain(m Move) Value {
	if !m.IsPromotion() {
		return 0
	}
	return m.PromotionType().ValueOf() - Pawn.ValueOf()
}

func prevMoveKey(prevMove Move) (PieceType, Square) {
	if prevMove == MoveNone {
		return PtNone, SqNone
	}
	return prevMove.MovedType(), prevMove.To()
}
