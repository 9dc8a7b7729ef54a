//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package zobrist holds the process-wide, deterministically seeded random
// keys used to incrementally hash a position. Keys never change after
// package init, so FEN -> key is stable across runs and processes.
package zobrist

import (
	. "github.com/jwkunz/plumgo/internal/types"
)

// Key is a 64-bit Zobrist hash.
type Key uint64

var (
	Pieces        [PieceLength][SqLength]Key
	CastlingKeys  [CastlingRightsLength]Key
	EnPassantFile [FileLength + 1]Key // index FileLength == no ep
	SideToMove   Key
)

// splitmix64 is a fast, high quality fixed-seed generator. Using it (rather
// than the platform PRNG) guarantees the same key table is produced on
// every process/OS/architecture, which the engine's determinism contract
// depends on.
type splitMix64 struct {
	state uint64
}

func newSplitMix64(seed uint64) *splitMix64 {
	return &splitMix64{state: seed}
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// fixedSeed anchors the whole key table. Changing it would break Zobrist
// stability across releases, so it is never derived from wall-clock time.
const fixedSeed uint64 = 0x9DF15A2C5EF10E91

func init() {
	rng := newSplitMix64(fixedSeed)
	for p := Piece(0); p < PieceLength; p++ {
		for sq := SqA1; sq < SqNone; sq++ {
			Pieces[p][sq] = Key(rng.next())
		}
	}
	for cr := CastlingRights(0); cr < CastlingRightsLength; cr++ {
		CastlingKeys[cr] = Key(rng.next())
	}
	for f := FileA; f <= FileH; f++ {
		EnPassantFile[f] = Key(rng.next())
	}
	SideToMove = Key(rng.next())
}
