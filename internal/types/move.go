//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package types

import (
	"fmt"
	"strings"
)

// MoveType distinguishes the four move shapes that need special make/unmake
// handling.
type MoveType uint8

const (
	Normal MoveType = iota
	Promotion
	EnPassant
	Castling
)

func (t MoveType) IsValid() bool {
	return t <= Castling
}

var moveTypeToString = [...]string{"n", "p", "e", "c"}

func (t MoveType) String() string {
	return moveTypeToString[t]
}

// Move flags, independent of MoveType, carried alongside it so move ordering
// and SEE do not need to re-derive them from the board.
const (
	FlagCapture     uint8 = 1 << 0
	FlagDoublePush  uint8 = 1 << 1
	FlagEnPassant   uint8 = 1 << 2
	FlagCastling    uint8 = 1 << 3
)

// Move is a single packed integer carrying from-square, to-square, moved
// piece kind, captured piece kind (PtNone if none), promotion piece kind
// (PtNone if none), a move-type tag, an ordering-flag nibble, and — in the
// upper 32 bits — a transient sort value used only while a move list is
// being ordered. MoveNone (0) is never a legal move.
//
//  BITMAP 64-bit
//  |---------------- sort value (32) ----------------|---------- move (32) ----------|
//                                                       ttt f fff ppp ccc mmm ffffff ffffff
//                                                                                to    from
type Move uint64

const MoveNone Move = 0

const (
	toShift       uint = 0
	fromShift     uint = 6
	movedShift    uint = 12
	capturedShift uint = 15
	promShift     uint = 18
	flagsShift    uint = 21
	typeShift     uint = 25
	valueShift    uint = 32

	squareMask   Move = 0x3F
	pieceMask    Move = 0x7
	flagsMask    Move = 0xF
	typeMask     Move = 0x3
	moveMask     Move = 0xFFFFFFFF        // low 32 bits: move content
	valueMask    Move = 0xFFFFFFFF << valueShift
)

// CreateMove packs a full move description into a Move value with no sort
// value attached.
func CreateMove(from, to Square, moved, captured, promotion PieceType, t MoveType, flags uint8) Move {
	return Move(to)&squareMask |
		(Move(from)&squareMask)<<fromShift |
		Move(moved&7)<<movedShift |
		Move(captured&7)<<capturedShift |
		Move(promotion&7)<<promShift |
		Move(flags)<<flagsShift |
		Move(t)<<typeShift
}

func (m Move) To() Square           { return Square((m >> toShift) & squareMask) }
func (m Move) From() Square         { return Square((m >> fromShift) & squareMask) }
func (m Move) MovedType() PieceType { return PieceType((m >> movedShift) & pieceMask) }
func (m Move) CapturedType() PieceType {
	return PieceType((m >> capturedShift) & pieceMask)
}
func (m Move) PromotionType() PieceType { return PieceType((m >> promShift) & pieceMask) }
func (m Move) MoveType() MoveType       { return MoveType((m >> typeShift) & typeMask) }
func (m Move) Flags() uint8             { return uint8((m >> flagsShift) & flagsMask) }

func (m Move) IsCapture() bool    { return m.Flags()&FlagCapture != 0 }
func (m Move) IsDoublePush() bool { return m.Flags()&FlagDoublePush != 0 }
func (m Move) IsEnPassant() bool  { return m.Flags()&FlagEnPassant != 0 }
func (m Move) IsCastling() bool   { return m.Flags()&FlagCastling != 0 }

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool { return m.MoveType() == Promotion }

// IsQuiet reports whether the move is neither a capture nor a promotion,
// i.e. a candidate for killer/history/countermove bookkeeping.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// MoveOf strips any attached sort value, returning the bare move content.
func (m Move) MoveOf() Move { return m & moveMask }

// ValueOf returns the transient sort value attached to the move. Unset
// (zero) value bits decode back to ValueNA, since the value is stored
// shifted by -ValueNA so that "no value written" and "value is ValueNA"
// are the same bit pattern.
func (m Move) ValueOf() Value {
	return Value((m&valueMask)>>valueShift) + ValueNA
}

// SetValue attaches a sort value to the move, returning the updated move.
// Has no effect on MoveNone.
func (m *Move) SetValue(v Value) Move {
	if *m == MoveNone {
		return *m
	}
	*m = *m&moveMask | Move(uint32(v-ValueNA))<<valueShift
	return *m
}

// IsValid reports whether the move has well-formed fields. MoveNone is not
// considered valid.
func (m Move) IsValid() bool {
	return m != MoveNone &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.From() != m.To() &&
		m.MovedType().IsValid() && m.MovedType() != PtNone &&
		m.MoveType().IsValid()
}

// StringUci renders the move the way the UCI protocol expects:
// <from><to>[<promo>].
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}

func (m Move) String() string {
	if m == MoveNone {
		return "Move{ none }"
	}
	return fmt.Sprintf("Move{ %-5s moved:%s cap:%s type:%s value:%v }",
		m.StringUci(), m.MovedType(), m.CapturedType(), m.MoveType(), m.ValueOf())
}
