//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package engine

import (
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/position"
	"github.com/jwkunz/plumgo/internal/search"
	. "github.com/jwkunz/plumgo/internal/types"
)

// ChooseMove is the engine's one primary operation: pick a move (and a
// ponder move) to play in pos under the constraints in params, and return
// diagnostic "info string" lines alongside the search's own "info depth"
// reporting (which goes out through the UciDriver, not this return value).
//
// Before trusting the search's own result, this checks the mate-in-one
// shortcut and the queen-promotion preference, both of which can override
// what iterative deepening happened to return.
func (e *Engine) ChooseMove(pos position.Position, params GoParams) (best, ponder Move, info []string) {
	mg := movegen.NewMoveGen()
	rootMoves := mg.GenerateLegalMoves(&pos, movegen.GenAll)
	if rootMoves.Len() == 0 {
		return MoveNone, MoveNone, []string{"info string no legal move in this position"}
	}

	if params.SearchMoves.Len() > 0 {
		restrictToAllowed(rootMoves, &params.SearchMoves)
		if rootMoves.Len() == 0 {
			return MoveNone, MoveNone, []string{"info string searchmoves excluded every legal move"}
		}
	}

	if m, found := mateInOne(&pos, rootMoves); found {
		return m, MoveNone, []string{"info string mate in one found before search"}
	}

	limits := resolveLimits(params)
	e.srch.StartSearch(pos, *limits)
	e.srch.WaitWhileSearching()
	result := e.srch.LastResult()

	best = preferQueenPromotion(rootMoves, result.BestMove)
	ponder = result.PonderMove

	info = e.multiPVLines(pos, params, limits, result)
	return best, ponder, info
}

// mateInOne checks every root legal move for an immediate checkmate,
// per spec.md §4.10's mate-in-one shortcut: this runs before any search,
// so a mate in one is never missed by a shallow or aborted iteration.
func mateInOne(p *position.Position, rootMoves *moveslice.MoveSlice) (Move, bool) {
	mg := movegen.NewMoveGen()
	for i := 0; i < rootMoves.Len(); i++ {
		m := rootMoves.At(i).MoveOf()
		p.DoMove(m)
		isMate := p.HasCheck() && !mg.HasLegalMove(p)
		p.UndoMove()
		if isMate {
			return m, true
		}
	}
	return MoveNone, false
}

// preferQueenPromotion swaps a non-queen promotion for the same-from/
// same-to queen promotion when one is legal, per spec.md §4.10.
func preferQueenPromotion(rootMoves *moveslice.MoveSlice, chosen Move) Move {
	if chosen == MoveNone || !chosen.IsPromotion() || chosen.PromotionType() == Queen {
		return chosen
	}
	for i := 0; i < rootMoves.Len(); i++ {
		m := rootMoves.At(i).MoveOf()
		if m.From() == chosen.From() && m.To() == chosen.To() && m.IsPromotion() && m.PromotionType() == Queen {
			return m
		}
	}
	return chosen
}

// multiPVLines reports the top MultiPV root moves. Line 1 reuses the main
// search's own result; lines 2..K come from a short refined search per
// candidate move (depth-1, a quarter of any node cap and a quarter of the
// main search's own elapsed time when it was time-controlled), restricted
// to that one root move via search.Limits.Moves, per spec.md §4.10.
func (e *Engine) multiPVLines(pos position.Position, params GoParams, mainLimits *search.Limits, mainResult search.Result) []string {
	if e.multiPV <= 1 || mainResult.RootMoves.Len() < 2 {
		return nil
	}

	k := e.multiPV
	if k > mainResult.RootMoves.Len() {
		k = mainResult.RootMoves.Len()
	}

	refinedDepth := mainResult.SearchDepth - 1
	if refinedDepth < 1 {
		refinedDepth = 1
	}

	lines := make([]string, 0, k)
	lines = append(lines, out.Sprintf("info multipv 1 score %s pv %s",
		mainResult.BestValue.String(), mainResult.Pv.StringUci()))

	for i := 1; i < k; i++ {
		m := mainResult.RootMoves.At(i).MoveOf()

		refined := search.NewLimits()
		refined.Depth = refinedDepth
		refined.Moves.PushBack(m)
		if mainLimits.Nodes > 0 {
			refined.Nodes = mainLimits.Nodes / 4
		}
		if mainLimits.TimeControl && mainResult.SearchTime > 0 {
			refined.TimeControl = true
			refined.MoveTime = mainResult.SearchTime / 4
		}

		e.srch.StartSearch(pos, *refined)
		e.srch.WaitWhileSearching()
		sub := e.srch.LastResult()

		lines = append(lines, out.Sprintf("info multipv %d score %s pv %s",
			i+1, sub.BestValue.String(), sub.Pv.StringUci()))
	}

	return lines
}

// restrictToAllowed filters moves down to only those matching an entry in
// allowed (compared ignoring any attached sort value).
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
