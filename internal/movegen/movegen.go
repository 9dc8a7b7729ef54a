//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package movegen generates legal moves for a position: pseudo-legal
// per-piece-kind generation into a reusable scratch buffer, followed by a
// legality filter that rejects moves leaving the mover's own king in check.
// Two call surfaces share this legality semantics — GenerateLegalMoves
// returns bare moves for search; GenerateLegalMovesAnnotated additionally
// records check-related metadata for callers outside the search hot path
// (UI, analysis).
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

// GenMode selects which families of moves to generate, letting quiescence
// ask for captures only.
type GenMode int

const (
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = GenCap | GenNonCap
)

// MoveInfo annotates a legal move with check-related metadata, produced
// only by the annotated generator.
type MoveInfo struct {
	Move             Move
	GivesCheck       bool
	IsDiscoveryCheck bool
	IsDoubleCheck    bool
	IsCheckmate      bool
}

// Movegen holds the reusable scratch buffers move generation needs so no
// per-node allocation happens inside the search hot path. Create with
// NewMoveGen(); the zero value is not usable.
type Movegen struct {
	pseudoLegal *moveslice.MoveSlice
	legal       *moveslice.MoveSlice
	lastErr     error
}

// NewMoveGen returns a Movegen with pre-sized scratch buffers.
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegal: moveslice.NewMoveSlice(MaxMoves),
		legal:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// Err returns the ErrInvalidState detected by the most recent generation
// call, or nil. Well-formed positions never set it; a caller at a search's
// boundary (root.go) checks it once per call rather than threading an error
// return through the recursive hot path.
func (mg *Movegen) Err() error {
	return mg.lastErr
}

// GenerateLegalMoves is the "fast" variant: it returns only packed moves,
// in no particular order (search imposes its own ordering). The returned
// slice is owned by mg and is overwritten by the next call.
func (mg *Movegen) GenerateLegalMoves(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.generatePseudoLegal(pos, mode)
	mg.legal.Clear()
	mg.pseudoLegal.FilterCopy(mg.legal, func(i int) bool {
		return pos.IsLegalMove(mg.pseudoLegal.At(i))
	})
	return mg.legal
}

// GenerateLegalMovesAnnotated additionally computes gives_check,
// is_discovery_check, is_double_check and is_checkmate for each legal move.
// Not used by search; intended for UI/analysis callers.
func (mg *Movegen) GenerateLegalMovesAnnotated(pos *position.Position, mode GenMode) []MoveInfo {
	moves := mg.GenerateLegalMoves(pos, mode)
	infos := make([]MoveInfo, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		infos = append(infos, mg.annotate(pos, m))
	}
	return infos
}

func (mg *Movegen) annotate(pos *position.Position, m Move) MoveInfo {
	info := MoveInfo{Move: m}

	pos.DoMove(m)
	them := pos.NextPlayer()
	us := them.Flip()
	kingSq := pos.KingSquare(them)
	checkers := checkerSquares(pos, kingSq, us)
	info.GivesCheck = checkers.PopCount() > 0
	info.IsDoubleCheck = checkers.PopCount() >= 2
	if checkers.PopCount() == 1 {
		checkerSq := checkers.Lsb()
		if checkerSq != m.To() {
			from, to := m.From(), m.To()
			_ = to
			if Intermediate(checkerSq, kingSq).Has(from) {
				info.IsDiscoveryCheck = true
			}
		}
	}
	if info.GivesCheck {
		info.IsCheckmate = !mg.HasLegalMove(pos)
	}
	pos.UndoMove()

	return info
}

// checkerSquares returns the bitboard of `by`-colored pieces attacking sq.
func checkerSquares(pos *position.Position, sq Square, by Color) Bitboard {
	occ := pos.OccupiedAll()
	var checkers Bitboard
	if GetPawnAttacks(by.Flip(), sq)&pos.PiecesBb(by, Pawn) != 0 {
		checkers |= GetPawnAttacks(by.Flip(), sq) & pos.PiecesBb(by, Pawn)
	}
	checkers |= GetPseudoAttacks(Knight, sq) & pos.PiecesBb(by, Knight)
	bishopsQueens := pos.PiecesBb(by, Bishop) | pos.PiecesBb(by, Queen)
	checkers |= GetAttacksBb(Bishop, sq, occ) & bishopsQueens
	rooksQueens := pos.PiecesBb(by, Rook) | pos.PiecesBb(by, Queen)
	checkers |= GetAttacksBb(Rook, sq, occ) & rooksQueens
	return checkers
}

// generatePseudoLegal fills mg.pseudoLegal with every pseudo-legal move for
// the side to move: piece legality (own-king safety) is not yet checked.
// Every square drawn from a piece-kind bitboard is cross-checked against
// the mailbox board (Position.PieceAt); a disagreement means the two
// representations have drifted apart and is recorded via Err() rather than
// emitted as a move, per spec.md §4.4's InvalidState failure mode.
func (mg *Movegen) generatePseudoLegal(pos *position.Position, mode GenMode) {
	mg.pseudoLegal.Clear()
	mg.lastErr = nil
	us := pos.NextPlayer()
	ownBb := pos.OccupiedBb(us)
	oppBb := pos.OccupiedBb(us.Flip())
	occAll := pos.OccupiedAll()

	mg.generatePawnMoves(pos, us, oppBb, occAll, mode)

	if mode&GenNonCap != 0 {
		mg.generateCastling(pos, us, occAll)
	}

	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen, King} {
		pieces := pos.PiecesBb(us, pt)
		for pieces != 0 {
			from := pieces.PopLsb()
			if actual := pos.PieceAt(from).TypeOf(); actual != pt {
				mg.lastErr = &ErrInvalidState{Detail: fmt.Sprintf(
					"piece bitboard claims %v on %v but board has %v", pt, from, actual)}
				continue
			}
			attacks := GetAttacksBb(pt, from, occAll) &^ ownBb
			if mode == GenCap {
				attacks &= oppBb
			} else if mode == GenNonCap {
				attacks &^= oppBb
			}
			for attacks != 0 {
				to := attacks.PopLsb()
				captured := PtNone
				flags := uint8(0)
				if to.Bb()&oppBb != 0 {
					captured = pos.PieceAt(to).TypeOf()
					flags |= FlagCapture
				}
				mg.pseudoLegal.PushBack(CreateMove(from, to, pt, captured, PtNone, Normal, flags))
			}
		}
	}
}

func (mg *Movegen) generatePawnMoves(pos *position.Position, us Color, oppBb, occAll Bitboard, mode GenMode) {
	pawns := pos.PiecesBb(us, Pawn)
	for probe := pawns; probe != 0; {
		sq := probe.PopLsb()
		if actual := pos.PieceAt(sq).TypeOf(); actual != Pawn {
			mg.lastErr = &ErrInvalidState{Detail: fmt.Sprintf(
				"piece bitboard claims %v on %v but board has %v", Pawn, sq, actual)}
			pawns.PopSquare(sq)
		}
	}
	forward := us.MoveDirection()

	// A straight push to the back rank is a promotion, which is a tactical
	// move even without a capture, so it belongs to GenCap as well as
	// GenNonCap; only a non-promoting push is gated to GenNonCap alone.
	single := ShiftBitboard(pawns, forward) &^ occAll
	pushable := single
	for pushable != 0 {
		to := pushable.PopLsb()
		from := to.To(oppositeDir(forward))
		isPromotion := to.RankOf() == Rank1 || to.RankOf() == Rank8
		if isPromotion {
			if mode&(GenCap|GenNonCap) != 0 {
				mg.addPawnMove(from, to, PtNone, 0)
			}
		} else if mode&GenNonCap != 0 {
			mg.addPawnMove(from, to, PtNone, 0)
		}
	}

	if mode&GenNonCap != 0 {
		doubleRank := us.PawnDoubleRank()
		double := ShiftBitboard(single&doubleRank, forward) &^ occAll
		for double != 0 {
			to := double.PopLsb()
			from := to.To(oppositeDir(forward)).To(oppositeDir(forward))
			mg.addPawnMove(from, to, PtNone, FlagDoublePush)
		}
	}

	if mode&GenCap != 0 {
		for _, d := range []Direction{eastOf(forward), westOf(forward)} {
			caps := ShiftBitboard(pawns, d) & oppBb
			for caps != 0 {
				to := caps.PopLsb()
				from := to.To(oppositeDir(d))
				captured := pos.PieceAt(to).TypeOf()
				mg.addPawnMove(from, to, captured, FlagCapture)
			}
		}

		ep := pos.EnPassantSquare()
		if ep != SqNone {
			for _, d := range []Direction{eastOf(forward), westOf(forward)} {
				fromBb := ShiftBitboard(ep.Bb(), oppositeDir(d)) & pawns
				if fromBb != 0 {
					from := fromBb.Lsb()
					mg.pseudoLegal.PushBack(CreateMove(from, ep, Pawn, Pawn, PtNone, EnPassant, FlagCapture|FlagEnPassant))
				}
			}
		}
	}
}

// addPawnMove appends a plain pawn move, fanning out into four
// underpromotion/promotion moves when to lands on the back rank.
func (mg *Movegen) addPawnMove(from, to Square, captured PieceType, flags uint8) {
	if to.RankOf() == Rank1 || to.RankOf() == Rank8 {
		for _, promo := range []PieceType{Queen, Rook, Bishop, Knight} {
			mg.pseudoLegal.PushBack(CreateMove(from, to, Pawn, captured, promo, Promotion, flags))
		}
		return
	}
	mg.pseudoLegal.PushBack(CreateMove(from, to, Pawn, captured, PtNone, Normal, flags))
}

func (mg *Movegen) generateCastling(pos *position.Position, us Color, occAll Bitboard) {
	rights := pos.CastlingRights()
	if us == Light {
		if rights.Has(CastlingLightOO) && KingSideCastleMask(Light)&occAll == 0 {
			mg.pseudoLegal.PushBack(CreateMove(SqE1, SqG1, King, PtNone, PtNone, Castling, FlagCastling))
		}
		if rights.Has(CastlingLightOOO) && QueenSideCastleMask(Light)&occAll == 0 {
			mg.pseudoLegal.PushBack(CreateMove(SqE1, SqC1, King, PtNone, PtNone, Castling, FlagCastling))
		}
		return
	}
	if rights.Has(CastlingDarkOO) && KingSideCastleMask(Dark)&occAll == 0 {
		mg.pseudoLegal.PushBack(CreateMove(SqE8, SqG8, King, PtNone, PtNone, Castling, FlagCastling))
	}
	if rights.Has(CastlingDarkOOO) && QueenSideCastleMask(Dark)&occAll == 0 {
		mg.pseudoLegal.PushBack(CreateMove(SqE8, SqC8, King, PtNone, PtNone, Castling, FlagCastling))
	}
}

func oppositeDir(d Direction) Direction { return -d }

func eastOf(forward Direction) Direction {
	if forward == North {
		return Northeast
	}
	return Southeast
}

func westOf(forward Direction) Direction {
	if forward == North {
		return Northwest
	}
	return Southwest
}

// HasLegalMove reports whether the side to move has at least one legal
// move, without generating and keeping the whole list. Used for
// checkmate/stalemate detection in search (depth-0 move-count check).
func (mg *Movegen) HasLegalMove(pos *position.Position) bool {
	mg.generatePseudoLegal(pos, GenAll)
	for i := 0; i < mg.pseudoLegal.Len(); i++ {
		if pos.IsLegalMove(mg.pseudoLegal.At(i)) {
			return true
		}
	}
	return false
}

var regexUciMove = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([qrbn])?$`)

// MoveFromUci generates all legal moves and matches uciMove against them,
// returning MoveNone if uciMove is not legal in pos.
func (mg *Movegen) MoveFromUci(pos *position.Position, uciMove string) Move {
	m := regexUciMove.FindStringSubmatch(strings.ToLower(uciMove))
	if m == nil {
		return MoveNone
	}
	from, to := MakeSquare(m[1]), MakeSquare(m[2])
	var promo PieceType = PtNone
	if m[3] != "" {
		promo = pieceTypeFromChar(m[3])
	}
	moves := mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		cand := moves.At(i)
		if cand.From() == from && cand.To() == to && cand.PromotionType() == promo {
			return cand
		}
	}
	return MoveNone
}

func pieceTypeFromChar(s string) PieceType {
	switch s {
	case "q":
		return Queen
	case "r":
		return Rook
	case "b":
		return Bishop
	case "n":
		return Knight
	default:
		return PtNone
	}
}

// ErrInvalidState reports an internal board invariant violation found
// while generating pseudo-legal moves (a piece-kind bitboard disagreeing
// with the mailbox board at the same square). Recorded on the Movegen
// that detected it, retrievable via Err(); well-formed positions never
// produce it.
type ErrInvalidState struct {
	Detail string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("movegen: invalid board state: %s", e.Detail)
}
