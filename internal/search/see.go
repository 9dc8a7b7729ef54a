//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// seeBuffer is a reusable gain array, one per search worker, so SEE never
// allocates inside the search hot path.
type seeBuffer struct {
	gain [32]Value
}

// staticExchangeEval runs the swap-off algorithm on the capture sequence at
// move's target square and returns the net material gain for the side
// making move, from the mover's perspective.
func (b *seeBuffer) staticExchangeEval(p *position.Position, move Move) Value {
	if move.MoveType() == EnPassant {
		return Pawn.ValueOf()
	}

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.PieceAt(fromSquare).TypeOf()
	nextPlayer := p.NextPlayer()

	occupied := p.OccupiedAll()
	remainingAttacks := attacksTo(p, toSquare, Light) | attacksTo(p, toSquare, Dark)

	gain := &b.gain
	gain[ply] = p.PieceAt(toSquare).TypeOf().ValueOf()

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		if move.MoveType() == Promotion {
			gain[ply] = move.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare)
		occupied.PopSquare(fromSquare)

		remainingAttacks |= revealedAttacks(p, toSquare, occupied, Light) |
			revealedAttacks(p, toSquare, occupied, Dark)

		fromSquare = leastValuableAttacker(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.PieceAt(fromSquare).TypeOf()
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// attacksTo returns every color-colored piece attacking square.
func attacksTo(p *position.Position, square Square, color Color) Bitboard {
	occ := p.OccupiedAll()
	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetAttacksBb(Knight, square, occ) & p.PiecesBb(color, Knight)) |
		(GetAttacksBb(King, square, occ) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occ) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occ) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks returns sliding attacks newly visible after a piece was
// removed from occupied; only sliders can have x-ray attacks revealed.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// leastValuableAttacker returns the square of the cheapest color-colored
// piece in bitboard, or SqNone.
func leastValuableAttacker(p *position.Position, bitboard Bitboard, color Color) Square {
	switch {
	case bitboard&p.PiecesBb(color, Pawn) != 0:
		return (bitboard & p.PiecesBb(color, Pawn)).Lsb()
	case bitboard&p.PiecesBb(color, Knight) != 0:
		return (bitboard & p.PiecesBb(color, Knight)).Lsb()
	case bitboard&p.PiecesBb(color, Bishop) != 0:
		return (bitboard & p.PiecesBb(color, Bishop)).Lsb()
	case bitboard&p.PiecesBb(color, Rook) != 0:
		return (bitboard & p.PiecesBb(color, Rook)).Lsb()
	case bitboard&p.PiecesBb(color, Queen) != 0:
		return (bitboard & p.PiecesBb(color, Queen)).Lsb()
	case bitboard&p.PiecesBb(color, King) != 0:
		return (bitboard & p.PiecesBb(color, King)).Lsb()
	default:
		return SqNone
	}
}

func maxValue(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
