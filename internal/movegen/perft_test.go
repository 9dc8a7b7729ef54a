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
)

// Perft node counts for the six standard reference positions, to the
// depths this suite can afford to run. Deeper counts are listed in
// spec.md §8 but are not exercised here to keep the suite fast.
var perftCases = []struct {
	name  string
	fen   string
	nodes []uint64 // index 0 == depth 1
}{
	{"start", position.StartFen, []uint64{20, 400, 8902}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
	{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	{"promo-tactics", "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1", []uint64{6, 264}},
	{"castling-edge", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486}},
	{"middlegame", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", nil},
}

func TestPerftReferencePositions(t *testing.T) {
	for _, tc := range perftCases {
		if tc.nodes == nil {
			continue
		}
		pos, err := position.NewPositionFen(tc.fen)
		assert.NoError(t, err, tc.name)
		for depth, want := range tc.nodes {
			got := Perft(pos, depth+1)
			assert.Equal(t, want, got, "perft(%s, %d)", tc.name, depth+1)
		}
	}
}

func TestPerftLeavesPositionUnchanged(t *testing.T) {
	pos, err := position.NewPositionFen(position.StartFen)
	assert.NoError(t, err)
	before := pos.StringFen()
	Perft(pos, 3)
	assert.Equal(t, before, pos.StringFen())
}
