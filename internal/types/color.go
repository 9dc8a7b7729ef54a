//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package types

// Color represents one of the two sides of a chess game. The engine names
// the sides Light and Dark rather than White/Black so board orientation and
// piece coloring stay a rendering concern of the (external) UI/UCI layer.
type Color uint8

const (
	Light     Color = iota // the side that moves first
	Dark                   // the second side
	ColorNone              // sentinel, not a valid side
)

// ColorLength number of valid colors.
const ColorLength = 2

// IsValid reports whether c is Light or Dark.
func (c Color) IsValid() bool {
	return c == Light || c == Dark
}

// Flip returns the other color. Flipping ColorNone is undefined.
func (c Color) Flip() Color {
	return c ^ 1
}

// Direction returns +1 for Light and -1 for Dark, used to fold negamax
// scores (always from side-to-move perspective) into an absolute score.
func (c Color) Direction() int {
	if c == Light {
		return 1
	}
	return -1
}

// MoveDirection returns the pawn push direction for the color.
func (c Color) MoveDirection() Direction {
	if c == Light {
		return North
	}
	return South
}

// PromotionRankBb returns the rank pawns of this color promote on.
func (c Color) PromotionRankBb() Bitboard {
	if c == Light {
		return Rank8_Bb
	}
	return Rank1_Bb
}

// PawnDoubleRank returns the rank pawns of this color stand on right after
// the single-step shift of their own double-push starting rank, used to
// detect eligibility for a two-square push.
func (c Color) PawnDoubleRank() Bitboard {
	if c == Light {
		return Rank3_Bb
	}
	return Rank6_Bb
}

func (c Color) String() string {
	switch c {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "ColorNone"
	}
}
