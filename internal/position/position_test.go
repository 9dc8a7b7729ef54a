//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jwkunz/plumgo/internal/types"
)

var perftFens = []string{
	StartFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

func TestFenRoundTrip(t *testing.T) {
	for _, fen := range perftFens {
		p, err := NewPositionFen(fen)
		assert.NoError(t, err)
		assert.Equal(t, fen, p.StringFen())
	}
}

func TestFromFenRejectsMalformed(t *testing.T) {
	_, err := NewPositionFen("not a fen at all")
	assert.Error(t, err)
}

func TestZobristConsistencyAfterMakeMoves(t *testing.T) {
	p := NewPosition()
	moves := []Move{
		CreateMove(SqE2, SqE4, Pawn, PtNone, PtNone, Normal, FlagDoublePush),
		CreateMove(SqE7, SqE5, Pawn, PtNone, PtNone, Normal, FlagDoublePush),
		CreateMove(SqG1, SqF3, Knight, PtNone, PtNone, Normal, 0),
	}
	for _, m := range moves {
		p.DoMove(m)
		assert.Equal(t, p.computeZobristKey(), p.zobristKey, "incremental zobrist key diverged from recomputed key")
		assert.Equal(t, p.computePawnZobristKey(), p.pawnZobristKey, "incremental pawn zobrist key diverged from recomputed key")
	}
}

func TestMakeUnmakeIdentity(t *testing.T) {
	for _, fen := range perftFens {
		p, err := NewPositionFen(fen)
		assert.NoError(t, err)
		before := *p

		m := CreateMove(SqE2, SqE3, Pawn, PtNone, PtNone, Normal, 0)
		if p.PieceAt(SqE2) == PieceNone || !p.IsLegalMove(m) {
			continue
		}
		p.DoMove(m)
		p.UndoMove()
		assert.True(t, reflect.DeepEqual(before, *p), "unmake(make(p)) != p for fen %s", fen)
	}
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	assert.NoError(t, err)
	m := CreateMove(SqE5, SqD6, Pawn, Pawn, PtNone, EnPassant, FlagCapture|FlagEnPassant)
	assert.True(t, p.IsLegalMove(m))
	p.DoMove(m)
	assert.Equal(t, PieceNone, p.PieceAt(SqD5))
	assert.Equal(t, LightPawn, p.PieceAt(SqD6))
}

func TestCastlingRightsPresentInStartingRookPosition(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.CastlingRights().Has(CastlingDarkOO))
}
