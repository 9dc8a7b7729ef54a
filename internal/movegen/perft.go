//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import "github.com/jwkunz/plumgo/internal/position"

// Perft counts leaf nodes reachable from pos at the given depth by full
// make/unmake recursion, the standard move-generator correctness metric.
// One Movegen scratch buffer is allocated per ply and reused across the
// whole traversal, so no per-node allocation happens during the walk.
func Perft(pos *position.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	generators := make([]*Movegen, depth)
	for i := range generators {
		generators[i] = NewMoveGen()
	}
	return perft(generators, pos, depth)
}

func perft(generators []*Movegen, pos *position.Position, depth int) uint64 {
	mg := generators[depth-1]
	moves := mg.GenerateLegalMoves(pos, GenAll)
	if depth == 1 {
		return uint64(moves.Len())
	}
	movesCopy := moves.Clone()
	var nodes uint64
	for i := 0; i < movesCopy.Len(); i++ {
		pos.DoMove(movesCopy.At(i))
		nodes += perft(generators, pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}
