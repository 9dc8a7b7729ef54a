//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package types

import "fmt"

// Square represents one square on a chess board, A1..H8 plus the SqNone
// sentinel.
type Square uint8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
)

// IsValid reports whether sq is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < SqNone
}

func (sq Square) FileOf() File {
	return File(sq & 7)
}

func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// MakeSquare parses a two-character square name (e.g. "e4"), returning
// SqNone if it is not well-formed.
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	file := File(s[0] - 'a')
	rank := Rank(s[1] - '1')
	if !file.IsValid() || !rank.IsValid() {
		return SqNone
	}
	return SquareOf(file, rank)
}

// SquareOf returns the square at the given file/rank, or SqNone if either
// is out of range.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square((int(r) << 3) + int(f))
}

// To returns the square one step away in direction d, or SqNone if that
// would leave the board.
func (sq Square) To(d Direction) Square {
	switch d {
	case North:
		if sq+Square(d) < SqNone {
			return sq + Square(d)
		}
		return SqNone
	case South:
		if int(sq)+int(d) >= 0 {
			return sq + Square(d)
		}
		return SqNone
	case East:
		if sq.FileOf() < FileH {
			return sq + Square(d)
		}
		return SqNone
	case West:
		if sq.FileOf() > FileA {
			return sq + Square(d)
		}
		return SqNone
	case Northeast:
		if sq.FileOf() < FileH && sq+Square(d) < SqNone {
			return sq + Square(d)
		}
		return SqNone
	case Southeast:
		if sq.FileOf() < FileH && int(sq)+int(d) >= 0 {
			return sq + Square(d)
		}
		return SqNone
	case Southwest:
		if sq.FileOf() > FileA && int(sq)+int(d) >= 0 {
			return sq + Square(d)
		}
		return SqNone
	case Northwest:
		if sq.FileOf() > FileA && sq+Square(d) < SqNone {
			return sq + Square(d)
		}
		return SqNone
	default:
		panic(fmt.Sprintf("invalid direction %d", d))
	}
}

// String returns the algebraic square name (e.g. "e4"), or "-" for SqNone.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return sq.FileOf().String() + sq.RankOf().String()
}
