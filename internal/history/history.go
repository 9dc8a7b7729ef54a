//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package history holds the per-search move-ordering heuristics: killer
// moves, the quiet-move history table, countermoves, and continuation
// history. All of it is transient — reset per search via New(); killers
// additionally reset per iterative-deepening iteration via ResetKillers().
package history

import (
	. "github.com/jwkunz/plumgo/internal/types"
)

// historyCap bounds the quiet-move history bonus so a long search cannot
// let one entry dominate move ordering forever.
const historyCap = 50_000

// History is the data structure search consults and updates every node to
// improve alpha-beta move ordering.
type History struct {
	Killers      [MaxDepth + 1][2]Move
	HistoryTable [ColorLength][PtLength][SqLength]int32
	CounterMove  [PtLength][SqLength]Move
	Continuation [ColorLength][PtLength][SqLength][PtLength][SqLength]int32
}

// New returns a zeroed History, ready for a fresh search.
func New() *History {
	return &History{}
}

// ResetKillers clears killer moves at the start of each iterative-deepening
// iteration; the rest of the tables persist across iterations within one
// search.
func (h *History) ResetKillers() {
	for ply := range h.Killers {
		h.Killers[ply][0] = MoveNone
		h.Killers[ply][1] = MoveNone
	}
}

// StoreKiller records m as the most recent quiet beta-cutoff move at ply,
// shifting the previous first killer into the second slot.
func (h *History) StoreKiller(ply int, m Move) {
	if ply > MaxDepth {
		return
	}
	mv := m.MoveOf()
	if h.Killers[ply][0] == mv {
		return
	}
	h.Killers[ply][1] = h.Killers[ply][0]
	h.Killers[ply][0] = mv
}

// IsKiller reports whether m matches one of ply's two killer slots, and
// which (0 or 1).
func (h *History) IsKiller(ply int, m Move) (isKiller bool, slot int) {
	mv := m.MoveOf()
	if h.Killers[ply][0] == mv {
		return true, 0
	}
	if h.Killers[ply][1] == mv {
		return true, 1
	}
	return false, -1
}

// AddBonus increases the quiet-move history/continuation scores on a
// cutoff, by depth^2, capped at historyCap.
func (h *History) AddBonus(us Color, prevPiece PieceType, prevTo Square, piece PieceType, to Square, depth int) {
	bonus := int32(depth * depth)
	h.HistoryTable[us][piece][to] = clampHistory(h.HistoryTable[us][piece][to] + bonus)
	if prevPiece != PtNone {
		h.Continuation[us][prevPiece][prevTo][piece][to] = clampHistory(h.Continuation[us][prevPiece][prevTo][piece][to] + bonus)
	}
}

func clampHistory(v int32) int32 {
	if v > historyCap {
		return historyCap
	}
	if v < -historyCap {
		return -historyCap
	}
	return v
}

// HistoryScore returns the raw quiet-move history score for (us, piece, to).
func (h *History) HistoryScore(us Color, piece PieceType, to Square) int32 {
	return h.HistoryTable[us][piece][to]
}

// ContinuationScore returns the raw (previous, current) quiet-pair bonus.
func (h *History) ContinuationScore(us Color, prevPiece PieceType, prevTo Square, piece PieceType, to Square) int32 {
	if prevPiece == PtNone {
		return 0
	}
	return h.Continuation[us][prevPiece][prevTo][piece][to]
}

// SetCounterMove records m as the quiet refutation of the previous ply's
// (prevPiece, prevTo).
func (h *History) SetCounterMove(prevPiece PieceType, prevTo Square, m Move) {
	if prevPiece == PtNone {
		return
	}
	h.CounterMove[prevPiece][prevTo] = m.MoveOf()
}

// GetCounterMove returns the stored refutation of (prevPiece, prevTo), or
// MoveNone.
func (h *History) GetCounterMove(prevPiece PieceType, prevTo Square) Move {
	if prevPiece == PtNone {
		return MoveNone
	}
	return h.CounterMove[prevPiece][prevTo]
}
