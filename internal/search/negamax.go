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

// negamax searches one interior node to depth, returning the score from
// the side-to-move's perspective and whether the search completed (false
// means an abort condition fired somewhere below and the caller must
// unwind without trusting the returned score).
//
// allowExtend controls whether this node is permitted to apply a
// single-ply selective extension to one of its children; a child that was
// reached via such an extension is called with allowExtend=false so
// extensions cannot chain every ply down a line (single-extend policy).
func (s *Search) negamax(p *position.Position, depth, ply int, alpha, beta Value, prevMove Move, allowExtend bool) (Value, bool) {
	if s.stopConditions() {
		return ValueZero, false
	}
	s.nodesVisited++
	if ply > MaxDepth {
		return s.evaluate(p), true
	}

	s.pv[ply].Clear()

	if ply > 0 {
		if v, isDraw := s.drawScore(p); isDraw {
			return v, true
		}
	}

	alphaOrig := alpha
	key := p.ZobristKey()
	useTT := s.tt != nil && config.Settings.Search.UseTT

	var ttMove Move = MoveNone
	if useTT {
		if e := s.tt.Probe(key); e != nil {
			s.statistics.TTHit++
			ttMove = e.Move()
			if int(e.Depth()) >= depth {
				v := expandMate(e.Value(), ply)
				switch e.Vtype() {
				case Exact:
					return v, true
				case Beta:
					if v >= beta {
						s.statistics.TTCuts++
						return v, true
					}
				case Alpha:
					if v <= alpha {
						s.statistics.TTCuts++
						return v, true
					}
				}
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	if depth <= 0 {
		return s.quiescence(p, alpha, beta, 0)
	}

	inCheck := p.HasCheck()
	us := p.NextPlayer()

	if s.nullMoveOk(p, depth, beta, inCheck) {
		if v, ok, cutoff := s.tryNullMove(p, depth, ply, beta, prevMove, allowExtend); !ok {
			return ValueZero, false
		} else if cutoff {
			return v, true
		}
	}

	mg := s.mg[ply]
	moves := mg.GenerateLegalMoves(p, movegen.GenAll)
	if moves.Len() == 0 {
		if inCheck {
			s.statistics.Checkmates++
			return -ValueCheckMate + Value(ply), true
		}
		s.statistics.Stalemates++
		return ValueZero, true
	}

	if ttMove != MoveNone {
		s.statistics.TTMoveUsed++
	}
	s.scoreMoves(moves, us, ttMove, ply, prevMove)

	bestScore := Value(-ValueInf)
	bestMove := MoveNone
	prevPiece, prevTo := prevMoveKey(prevMove)
	lateEndgame := p.IsLateEndgame()

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		isQuiet := m.IsQuiet()

		if s.skipByLMP(depth, i, inCheck, lateEndgame, isQuiet, bestMove, bestScore, alpha) {
			s.statistics.LmpCuts++
			continue
		}

		p.DoMove(m)
		givesCheck := p.HasCheck()

		childDepth := depth - 1
		extendChild := false
		if config.Settings.Search.UseExtension && allowExtend && childDepth <= 1 && p.IsLateEndgame() &&
			s.shouldExtend(p, m, givesCheck) {
			childDepth++
			extendChild = true
		}
		childAllowExtend := !extendChild

		score, ok := s.searchMove(p, i, depth, childDepth, ply, alpha, beta, m, isQuiet, childAllowExtend)
		p.UndoMove()

		if !ok {
			return ValueZero, false
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.updatePV(ply, m)
			}
		}

		if alpha >= beta {
			s.statistics.BetaCuts++
			if i == 0 {
				s.statistics.BetaCuts1st++
			}
			if isQuiet {
				s.hist.StoreKiller(ply, m)
				s.hist.AddBonus(us, prevPiece, prevTo, m.MovedType(), m.To(), depth)
				s.hist.SetCounterMove(prevPiece, prevTo, m)
			}
			break
		}
	}

	if useTT {
		var vtype ValueType
		switch {
		case bestScore <= alphaOrig:
			vtype = Alpha
		case bestScore >= beta:
			vtype = Beta
		default:
			vtype = Exact
		}
		s.tt.Store(key, bestMove, int8(depth), bestScore, vtype, s.evaluate(p), ply)
	}

	return bestScore, true
}

// searchMove runs one root/interior child under the Principal Variation
// Search protocol: the first move gets a full window, every later move is
// first probed with a zero window (optionally late-move reduced) and only
// re-searched at full depth/window if the probe beats alpha.
func (s *Search) searchMove(p *position.Position, index, parentDepth, childDepth, ply int, alpha, beta Value, m Move, isQuiet bool, childAllowExtend bool) (Value, bool) {
	if index == 0 {
		v, ok := s.negamax(p, childDepth, ply+1, -beta, -alpha, m, childAllowExtend)
		return -v, ok
	}

	reduction := 0
	if config.Settings.Search.UseLMR && isQuiet && parentDepth >= 3 && index >= 3 {
		reduction = lmrReduction(parentDepth, index)
	}

	searchDepth := childDepth - reduction
	if searchDepth < 0 {
		searchDepth = 0
	}

	v, ok := s.negamax(p, searchDepth, ply+1, -alpha-1, -alpha, m, childAllowExtend)
	if !ok {
		return 0, false
	}
	score := -v

	if reduction > 0 && score > alpha {
		s.statistics.LmrResearches++
		v, ok = s.negamax(p, childDepth, ply+1, -alpha-1, -alpha, m, childAllowExtend)
		if !ok {
			return 0, false
		}
		score = -v
	}

	if score > alpha && score < beta {
		s.statistics.PvsResearches++
		if ply == 0 {
			s.statistics.RootPvsResearches++
		}
		v, ok = s.negamax(p, childDepth, ply+1, -beta, -alpha, m, childAllowExtend)
		if !ok {
			return 0, false
		}
		score = -v
	}

	return score, true
}

// updatePV splices m followed by the already-searched child PV into ply's
// PV buffer. Buffers are allocated once per ply and reused across every
// node visited at that ply, so this only runs when the move actually
// improved alpha.
func (s *Search) updatePV(ply int, m Move) {
	pv := s.pv[ply]
	pv.Clear()
	pv.PushBack(m)
	if ply+1 < len(s.pv) {
		child := s.pv[ply+1]
		for i := 0; i < child.Len(); i++ {
			pv.PushBack(child.At(i))
		}
	}
}

func (s *Search) skipByLMP(depth, index int, inCheck, lateEndgame, isQuiet bool, bestMove Move, bestScore, alpha Value) bool {
	if !config.Settings.Search.UseLMP || !isQuiet || inCheck || lateEndgame || depth > 3 {
		return false
	}
	if index == 0 || bestMove == MoveNone {
		return false
	}
	if bestScore <= -ValueCheckMateThreshold || alpha <= -ValueCheckMateThreshold {
		return false
	}
	return index > lmpThreshold(depth)
}

func lmpThreshold(depth int) int {
	switch depth {
	case 0, 1:
		return 3
	case 2:
		return 6
	default:
		return 10
	}
}

func lmrReduction(depth, index int) int {
	switch {
	case depth >= 9 && index >= 12:
		return 3
	case depth >= 7 && index >= 7:
		return 2
	default:
		return 1
	}
}

// nullMoveOk reports whether null-move pruning may be attempted at this
// node: not in check, deep enough, beta far from a mate score, the side to
// move has material to spare, and the position is not a simplified
// endgame prone to zugzwang.
func (s *Search) nullMoveOk(p *position.Position, depth int, beta Value, inCheck bool) bool {
	if !config.Settings.Search.UseNullMove || inCheck {
		return false
	}
	if depth < config.Settings.Search.NmpMinDepth {
		return false
	}
	if absValue(beta) >= ValueCheckMateThreshold {
		return false
	}
	if p.NonPawnMaterial(p.NextPlayer()) <= 0 {
		return false
	}
	return !p.IsLateEndgame()
}

// tryNullMove performs the null-move search itself. The returned bool pair
// is (completed, cutoff): completed is false on abort, cutoff is true when
// the null-move result licenses an immediate beta cutoff.
func (s *Search) tryNullMove(p *position.Position, depth, ply int, beta Value, prevMove Move, allowExtend bool) (Value, bool, bool) {
	r := 2
	if depth >= 6 {
		r = 3
	}
	reducedDepth := depth - 1 - r
	if reducedDepth < 0 {
		reducedDepth = 0
	}

	p.DoNullMove()
	v, ok := s.negamax(p, reducedDepth, ply+1, -beta, -beta+1, MoveNone, allowExtend)
	p.UndoNullMove()
	if !ok {
		return ValueZero, false, false
	}
	nullScore := -v
	if nullScore < beta {
		return ValueZero, true, false
	}

	if depth < 8 {
		s.statistics.NullMoveCuts++
		return beta, true, true
	}

	// Verification: at high depths a bare null-move cutoff can hide a
	// zugzwang-prone position a reduced real search would catch, so
	// confirm with a zero-window search before trusting it.
	vv, ok2 := s.negamax(p, reducedDepth, ply, beta-1, beta, prevMove, allowExtend)
	if !ok2 {
		return ValueZero, false, false
	}
	if vv >= beta {
		s.statistics.NullMoveCuts++
		return beta, true, true
	}
	return ValueZero, true, false
}

func (s *Search) shouldExtend(p *position.Position, m Move, givesCheck bool) bool {
	if givesCheck {
		return true
	}

	mover := p.NextPlayer().Flip()

	if m.MovedType() == Pawn {
		toRank := m.To().RankOf()
		reachedFar := (mover == Light && toRank >= Rank6) || (mover == Dark && toRank <= Rank3)
		if reachedFar && isPassedPawn(p, mover, m.To()) {
			return true
		}
	}

	if isKingPawnOnlyEndgame(p) && (m.MovedType() == King || m.MovedType() == Pawn) {
		kingDistance := SquareDistance(p.KingSquare(Light), p.KingSquare(Dark))
		if kingDistance <= 2 {
			return true
		}
		if m.MovedType() == Pawn {
			toRank := m.To().RankOf()
			nearPromotion := (mover == Light && toRank >= Rank7) || (mover == Dark && toRank <= Rank2)
			if nearPromotion {
				return true
			}
		}
	}

	return false
}

func isPassedPawn(p *position.Position, c Color, sq Square) bool {
	return sq.PassedPawnMask(c)&p.PiecesBb(c.Flip(), Pawn) == 0
}

func isKingPawnOnlyEndgame(p *position.Position) bool {
	officers := p.PiecesBb(Light, Knight) | p.PiecesBb(Light, Bishop) | p.PiecesBb(Light, Rook) | p.PiecesBb(Light, Queen) |
		p.PiecesBb(Dark, Knight) | p.PiecesBb(Dark, Bishop) | p.PiecesBb(Dark, Rook) | p.PiecesBb(Dark, Queen)
	return officers == 0
}

func absValue(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}

// expandMate re-expands a transposition-table value normalized to be
// path-independent back into a score measured from this node's ply,
// mirroring transpositiontable's own (unexported) inverse of Table.Store's
// normalization.
func expandMate(v Value, ply int) Value {
	if !v.IsCheckMateValue() {
		return v
	}
	if v > 0 {
		return v - Value(ply)
	}
	return v + Value(ply)
}
