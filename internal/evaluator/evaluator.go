//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package evaluator computes a static, side-to-move-relative evaluation of
// a position: material and piece-square values (tracked incrementally on
// Position itself), plus mobility, king safety and tempo terms layered on
// top and gated by config.Settings.Eval feature flags.
package evaluator

import (
	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// Evaluator holds no per-search state; it is safe for concurrent use by
// multiple search workers sharing no mutable fields.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores pos from the perspective of the side to move: positive
// favors the mover. The score is stateless and total, combining every
// enabled term in a single pass.
func (e *Evaluator) Evaluate(pos *position.Position) Value {
	us := pos.NextPlayer()
	them := us.Flip()

	gpf := float64(pos.GamePhase()) / float64(GamePhaseMax)
	if gpf > 1.0 {
		gpf = 1.0
	}

	materialAndPsq := func(c Color) Value {
		sc := Score{
			MidGameValue: int(pos.Material(c)) + int(pos.PsqMidValue(c)),
			EndGameValue: int(pos.Material(c)) + int(pos.PsqEndValue(c)),
		}
		return sc.ValueFromScore(gpf)
	}

	value := materialAndPsq(us) - materialAndPsq(them)

	if config.Settings.Eval.UseMobility {
		value += e.mobility(pos, us) - e.mobility(pos, them)
	}

	if config.Settings.Eval.UseKingEval {
		value += e.kingSafety(pos, us) - e.kingSafety(pos, them)
	}

	value += Value(config.Settings.Eval.Tempo)

	return value
}

// mobility counts pseudo-attacked squares not occupied by c's own pieces,
// for every non-pawn, non-king piece, weighted by a flat per-square bonus.
func (e *Evaluator) mobility(pos *position.Position, c Color) Value {
	own := pos.OccupiedBb(c)
	occ := pos.OccupiedAll()
	bonus := Value(config.Settings.Eval.MobilityBonus)

	var squares int
	for pt := Knight; pt <= Queen; pt++ {
		pieces := pos.PiecesBb(c, pt)
		for pieces != 0 {
			from := pieces.PopLsb()
			squares += (GetAttacksBb(pt, from, occ) &^ own).PopCount()
		}
	}
	return Value(squares) * bonus
}

// kingSafety rewards own pawns on the king's file and the two adjacent files
// (anywhere on those files, whether or not the king has castled) and rooks
// placed on open or half-open files.
func (e *Evaluator) kingSafety(pos *position.Position, c Color) Value {
	var value Value
	kingSq := pos.KingSquare(c)
	pawns := pos.PiecesBb(c, Pawn)

	shieldFile := int(kingSq.FileOf())
	for df := -1; df <= 1; df++ {
		f := shieldFile + df
		if f < 0 || f > int(FileH) {
			continue
		}
		if FileBb(File(f))&pawns != 0 {
			value += Value(config.Settings.Eval.KingCastlePawnShieldBonus) / 3
		}
	}

	rooks := pos.PiecesBb(c, Rook)
	oppPawns := pos.PiecesBb(c.Flip(), Pawn)
	for rooks != 0 {
		sq := rooks.PopLsb()
		file := FileBb(sq.FileOf())
		if file&pawns == 0 {
			if file&oppPawns == 0 {
				value += Value(config.Settings.Eval.RookOnOpenFileBonus)
			} else {
				value += Value(config.Settings.Eval.RookOnOpenFileBonus) / 2
			}
		}
	}

	return value
}
