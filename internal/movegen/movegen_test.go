//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// TestFastAndAnnotatedGeneratorsAgree checks spec.md §8 property 4: the
// fast and annotated generators must produce the same set of moves, for
// every reference position perft_test.go exercises.
func TestFastAndAnnotatedGeneratorsAgree(t *testing.T) {
	for _, tc := range perftCases {
		pos, err := position.NewPositionFen(tc.fen)
		assert.NoError(t, err, tc.name)

		mg := NewMoveGen()
		fast := mg.GenerateLegalMoves(pos, GenAll).Clone()
		fastSet := make(map[uint64]bool, fast.Len())
		for i := 0; i < fast.Len(); i++ {
			fastSet[uint64(fast.At(i).MoveOf())] = true
		}

		mg2 := NewMoveGen()
		annotated := mg2.GenerateLegalMovesAnnotated(pos, GenAll)
		assert.Equal(t, fast.Len(), len(annotated), "move count mismatch for %s", tc.name)

		annotatedSet := make(map[uint64]bool, len(annotated))
		for _, info := range annotated {
			annotatedSet[uint64(info.Move.MoveOf())] = true
		}
		assert.Equal(t, fastSet, annotatedSet, "move set mismatch for %s", tc.name)
	}
}

// TestGenerateLegalMovesReportsNoErrorOnWellFormedPositions guards the
// piece-bitboard/mailbox consistency check added to generatePseudoLegal:
// every reference position must generate cleanly with Err() nil, since
// well-formed positions never disagree between the two representations.
func TestGenerateLegalMovesReportsNoErrorOnWellFormedPositions(t *testing.T) {
	for _, tc := range perftCases {
		pos, err := position.NewPositionFen(tc.fen)
		assert.NoError(t, err, tc.name)

		mg := NewMoveGen()
		mg.GenerateLegalMoves(pos, GenAll)
		assert.NoError(t, mg.Err(), tc.name)
	}
}

// TestCastlingMovesAreLegalRootMoves is spec.md §8 Scenario E: both castles
// are legal and carry the castling flag when both sides still have full
// rights and the intervening squares are empty and unattacked.
func TestCastlingMovesAreLegalRootMoves(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(pos, GenAll)

	var sawKingside, sawQueenside bool
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.StringUci() == "e1g1" {
			sawKingside = true
			assert.True(t, m.IsCastling())
		}
		if m.StringUci() == "e1c1" {
			sawQueenside = true
			assert.True(t, m.IsCastling())
		}
	}
	assert.True(t, sawKingside, "e1g1 should be a legal root move")
	assert.True(t, sawQueenside, "e1c1 should be a legal root move")
}

// TestKingCannotMoveNextToEnemyKnight guards the king-move legality path:
// a king move landing on a square attacked by an enemy knight (not a
// slider) must be rejected. This is a regression test for a legality bug
// where only sliding-piece attacks were checked when the king itself
// moved to a new square.
func TestKingCannotMoveNextToEnemyKnight(t *testing.T) {
	// White king on e1, black knight on d4, which attacks e2.
	pos, err := position.NewPositionFen("4k3/8/8/8/3n4/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.MovedType() == King && m.To() == SqE2 {
			t.Fatalf("king move to e2 should be illegal: attacked by knight on d4")
		}
	}
}

// TestPawnCheckBlocksUnrelatedQuietMoves: when the side to move is in
// check from a pawn, a quiet move that neither captures the checker nor
// moves the king must be filtered out as illegal.
func TestPawnCheckBlocksUnrelatedQuietMoves(t *testing.T) {
	// White king on e1 in check from a black pawn on d2 (pawn attacks e1
	// diagonally); a rook move elsewhere must not be legal.
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/3p4/4K2R w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, pos.HasCheck())

	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.MovedType() == Rook && m.From() == SqH1 {
			t.Fatalf("rook move %s should be illegal while king is in check from d2 pawn", m.StringUci())
		}
	}
}
