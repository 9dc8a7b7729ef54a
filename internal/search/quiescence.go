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
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// maxQPly bounds quiescence recursion independently of the nominal search
// depth, since captures/checks could otherwise chain arbitrarily deep.
const maxQPly = 10

// quiescence extends the search through captures, en passant, promotions
// and (at qply 0 only) checking quiet moves, until a quiet position is
// reached or maxQPly is hit. A position with the side to move in check has
// no stand-pat: every legal reply is a candidate, mirroring the interior
// search's in-check handling.
func (s *Search) quiescence(p *position.Position, alpha, beta Value, qply int) (Value, bool) {
	if s.stopConditions() {
		return ValueZero, false
	}
	s.nodesVisited++

	if v, isDraw := s.drawScore(p); isDraw {
		return v, true
	}

	inCheck := p.HasCheck()
	standPat := s.evaluate(p)

	if qply >= maxQPly {
		return standPat, true
	}

	if inCheck {
		return s.quiescenceInCheck(p, alpha, beta, qply)
	}

	if standPat >= beta {
		s.statistics.QStandPatCuts++
		return standPat, true
	}
	if standPat > alpha {
		alpha = standPat
	}

	mg := s.qmg[qply]
	moves := mg.GenerateLegalMoves(p, movegen.GenCap)
	s.scoreTacticalMoves(moves)

	deltaMargin := qDeltaMargin(qply, p.IsLateEndgame())
	seeThreshold := qSeeThreshold(qply, p.IsLateEndgame())

	bestScore := standPat

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()

		if config.Settings.Search.UseSEE && !m.IsPromotion() {
			see := s.see.staticExchangeEval(p, m)
			if see < seeThreshold {
				s.statistics.QSeePrunings++
				continue
			}
		}

		gain := captureGain(m)
		if standPat+gain+deltaMargin < alpha {
			s.statistics.QDeltaPrunings++
			continue
		}

		p.DoMove(m)
		v, ok := s.quiescence(p, -beta, -alpha, qply+1)
		p.UndoMove()
		if !ok {
			return ValueZero, false
		}
		score := -v

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if qply < 1 {
		var ok bool
		bestScore, ok = s.quiescenceChecks(p, alpha, beta, qply, bestScore)
		if !ok {
			return ValueZero, false
		}
	}

	return bestScore, true
}

// quiescenceInCheck has no stand-pat: the side to move must get out of
// check, so every legal move (not just tactical ones) is searched.
func (s *Search) quiescenceInCheck(p *position.Position, alpha, beta Value, qply int) (Value, bool) {
	mg := s.qmg[qply]
	moves := mg.GenerateLegalMoves(p, movegen.GenAll)
	if moves.Len() == 0 {
		return -ValueCheckMate + Value(qply), true
	}
	s.scoreTacticalMoves(moves)

	bestScore := Value(-ValueInf)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		p.DoMove(m)
		v, ok := s.quiescence(p, -beta, -alpha, qply+1)
		p.UndoMove()
		if !ok {
			return ValueZero, false
		}
		score := -v
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore, true
}

// quiescenceChecks appends quiet checking moves at the quiescence root
// ply only, since otherwise every check along a capture sequence would
// reopen a fresh non-capturing search frontier.
func (s *Search) quiescenceChecks(p *position.Position, alpha, beta Value, qply int, bestScore Value) (Value, bool) {
	mg := s.qmg[qply]
	quiets := mg.GenerateLegalMoves(p, movegen.GenNonCap)
	for i := 0; i < quiets.Len(); i++ {
		m := quiets.At(i).MoveOf()
		if m.IsPromotion() {
			continue
		}
		p.DoMove(m)
		givesCheck := p.HasCheck()
		if !givesCheck {
			p.UndoMove()
			continue
		}
		v, ok := s.quiescence(p, -beta, -alpha, qply+1)
		p.UndoMove()
		if !ok {
			return bestScore, false
		}
		score := -v
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore, true
}

func captureGain(m Move) Value {
	victim := m.CapturedType().ValueOf()
	if m.IsEnPassant() {
		victim = Pawn.ValueOf()
	}
	return victim + promotionGain(m)
}

func qDeltaMargin(qply int, lateEndgame bool) Value {
	margin := Value(120 - 10*qply)
	if margin < 0 {
		margin = 0
	}
	if lateEndgame {
		margin += 75
	}
	return margin
}

func qSeeThreshold(qply int, lateEndgame bool) Value {
	threshold := Value(-120 + 5*qply)
	if lateEndgame {
		threshold -= 40
	}
	return threshold
}
