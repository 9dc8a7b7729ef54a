//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package position represents a chess board and its position: an 8x8 piece
// array backed by per-color/per-kind bitboards, a stack of undo records,
// and incremental Zobrist keys (full and pawn-only) for transposition table
// lookups and repetition detection.
//
// Create a new instance with NewPosition() for the start position, or
// NewPositionFen(fen) to load an arbitrary position.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/jwkunz/plumgo/internal/types"
	"github.com/jwkunz/plumgo/internal/zobrist"
)

// Key is the Zobrist hash type used as the transposition table key.
type Key = zobrist.Key

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const startFen = StartFen

const maxHistory = 256 + MaxDepth

// historyState captures everything needed to undo one make, beyond what
// the move itself already encodes (moved/captured kind travel inside the
// packed Move).
type historyState struct {
	move               Move
	castlingRights     CastlingRights
	enPassantSquare    Square
	halfMoveClock      int
	zobristKey         Key
	pawnZobristKey     Key
	hasCheckFlag       int // -1 unknown, 0 false, 1 true
}

// Position is the mutable, central chess board representation.
type Position struct {
	board [SqLength]Piece

	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard

	castlingRights     CastlingRights
	enPassantSquare    Square
	halfMoveClock      int
	nextPlayer         Color
	nextHalfMoveNumber int

	zobristKey     Key
	pawnZobristKey Key

	kingSquare [ColorLength]Square

	material         [ColorLength]Value
	materialNonPawn  [ColorLength]Value
	psqMidValue      [ColorLength]Value
	psqEndValue      [ColorLength]Value
	gamePhase        int

	historyCounter int
	history        [maxHistory]historyState
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := NewPositionFen(startFen)
	if err != nil {
		panic("invalid built-in start FEN: " + err.Error())
	}
	return p
}

// NewPositionFen parses a FEN string into a Position, or returns an
// InvalidFEN-flavored error if any of the six fields is missing or
// malformed.
func NewPositionFen(fenStr string) (*Position, error) {
	p := &Position{}
	for sq := range p.board {
		p.board[sq] = PieceNone
	}
	p.enPassantSquare = SqNone
	if err := p.setupBoard(fenStr); err != nil {
		return nil, err
	}
	return p, nil
}

var fenRegex = regexp.MustCompile(
	`^\s*([pnbrqkPNBRQK1-8]+(/[pnbrqkPNBRQK1-8]+){7})\s+([wb])\s+(-|[KQkq]+)\s+(-|[a-h][36])\s+(\d+)\s+(\d+)\s*$`)

func (p *Position) setupBoard(fenStr string) error {
	m := fenRegex.FindStringSubmatch(fenStr)
	if m == nil {
		return fmt.Errorf("invalid FEN: %q", fenStr)
	}

	ranks := strings.Split(m[1], "/")
	for i, rankStr := range ranks {
		r := Rank(7 - i)
		f := FileA
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			pc := PieceFromChar(string(c))
			if pc == PieceNone {
				return fmt.Errorf("invalid FEN piece char %q", c)
			}
			if !f.IsValid() {
				return errors.New("invalid FEN: too many squares on rank")
			}
			p.putPiece(pc, SquareOf(f, r))
			f++
		}
	}

	if m[3] == "w" {
		p.nextPlayer = Light
	} else {
		p.nextPlayer = Dark
	}

	p.castlingRights = CastlingNone
	if strings.Contains(m[4], "K") {
		p.castlingRights.Add(CastlingLightOO)
	}
	if strings.Contains(m[4], "Q") {
		p.castlingRights.Add(CastlingLightOOO)
	}
	if strings.Contains(m[4], "k") {
		p.castlingRights.Add(CastlingDarkOO)
	}
	if strings.Contains(m[4], "q") {
		p.castlingRights.Add(CastlingDarkOOO)
	}

	if m[5] == "-" {
		p.enPassantSquare = SqNone
	} else {
		p.enPassantSquare = MakeSquare(m[5])
	}

	hmc, err := strconv.Atoi(m[6])
	if err != nil {
		return fmt.Errorf("invalid FEN halfmove clock: %w", err)
	}
	p.halfMoveClock = hmc

	fullMove, err := strconv.Atoi(m[7])
	if err != nil {
		return fmt.Errorf("invalid FEN fullmove number: %w", err)
	}
	p.nextHalfMoveNumber = 2*fullMove - 1
	if p.nextPlayer == Dark {
		p.nextHalfMoveNumber++
	}

	p.zobristKey = p.computeZobristKey()
	p.pawnZobristKey = p.computePawnZobristKey()
	p.history[0].hasCheckFlag = -1
	return nil
}

// StringFen renders the position as a FEN string. to_fen(from_fen(s)) == s
// for every FEN this parser accepts.
func (p *Position) StringFen() string {
	var sb strings.Builder
	for r := Rank8; ; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceToFenChar(pc))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != Rank1 {
			sb.WriteString("/")
		} else {
			break
		}
	}
	sb.WriteString(" ")
	if p.nextPlayer == Light {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")
	sb.WriteString(p.castlingRights.String())
	sb.WriteString(" ")
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))
	return sb.String()
}

func pieceToFenChar(p Piece) string {
	// board uses upper-case letters for Light and lower-case for Dark via
	// the same mapping the Piece.String() table already provides.
	return p.String()
}

func (p *Position) String() string { return p.StringFen() }

// FullMoveNumber returns the standard FEN full-move counter.
func (p *Position) FullMoveNumber() int {
	return (p.nextHalfMoveNumber + 1) / 2
}

// NextPlayer returns the side to move.
func (p *Position) NextPlayer() Color { return p.nextPlayer }

// CastlingRights returns the current castling availability.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en passant target square, or SqNone.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfMoveClock returns the plies since the last pawn move or capture.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// ZobristKey returns the incremental full-position Zobrist key.
func (p *Position) ZobristKey() Key { return p.zobristKey }

// PawnZobristKey returns the incremental pawns+kings-only Zobrist key.
func (p *Position) PawnZobristKey() Key { return p.pawnZobristKey }

// PieceAt returns the piece occupying sq, or PieceNone.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// PiecesBb returns the bitboard of pieces of kind pt for color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard { return p.piecesBb[c][pt] }

// OccupiedBb returns the occupancy bitboard for color c.
func (p *Position) OccupiedBb(c Color) Bitboard { return p.occupiedBb[c] }

// OccupiedAll returns the union occupancy of both colors.
func (p *Position) OccupiedAll() Bitboard { return p.occupiedBb[Light] | p.occupiedBb[Dark] }

// GamePhase returns the 0..GamePhaseMax officer-weighted phase counter.
func (p *Position) GamePhase() int { return p.gamePhase }

// Material returns the sum of the piece values of color c (piece-square
// values are kept separately, see PsqMidValue/PsqEndValue).
func (p *Position) Material(c Color) Value { return p.material[c] }

// NonPawnMaterial returns the material sum for color c excluding pawns,
// used by null-move pruning to recognize zugzwang-prone pawn endings.
func (p *Position) NonPawnMaterial(c Color) Value { return p.materialNonPawn[c] }

// Ply returns the number of makes currently on the undo stack, i.e. the
// number of plies played since this Position's root.
func (p *Position) Ply() int { return p.historyCounter }

// PsqMidValue returns color c's running mid-game piece-square sum.
func (p *Position) PsqMidValue(c Color) Value { return p.psqMidValue[c] }

// PsqEndValue returns color c's running end-game piece-square sum.
func (p *Position) PsqEndValue(c Color) Value { return p.psqEndValue[c] }

// IsLateEndgame reports whether remaining material is low enough that
// search extensions tuned for simplified endgames should kick in.
func (p *Position) IsLateEndgame() bool { return p.gamePhase <= 8 }

// ---- board mutation primitives -------------------------------------------------

func (p *Position) putPiece(pc Piece, sq Square) {
	p.board[sq] = pc
	c, pt := pc.ColorOf(), pc.TypeOf()
	p.piecesBb[c][pt].PushSquare(sq)
	p.occupiedBb[c].PushSquare(sq)
	if pt == King {
		p.kingSquare[c] = sq
	}
	p.material[c] += pt.ValueOf()
	if pt != Pawn {
		p.materialNonPawn[c] += pt.ValueOf()
	}
	p.gamePhase += pt.GamePhaseValue()
	p.psqMidValue[c] += PosMidValue(pc, sq)
	p.psqEndValue[c] += PosEndValue(pc, sq)
}

func (p *Position) removePiece(sq Square) {
	pc := p.board[sq]
	c, pt := pc.ColorOf(), pc.TypeOf()
	p.board[sq] = PieceNone
	p.piecesBb[c][pt].PopSquare(sq)
	p.occupiedBb[c].PopSquare(sq)
	p.material[c] -= pt.ValueOf()
	if pt != Pawn {
		p.materialNonPawn[c] -= pt.ValueOf()
	}
	p.gamePhase -= pt.GamePhaseValue()
	p.psqMidValue[c] -= PosMidValue(pc, sq)
	p.psqEndValue[c] -= PosEndValue(pc, sq)
}

func (p *Position) movePiece(from, to Square) {
	pc := p.board[from]
	p.removePiece(from)
	p.putPiece(pc, to)
}

// ---- make / unmake ---------------------------------------------------------

// DoMove applies a legal move to the position, pushing an undo record.
// Callers are responsible for only passing moves produced by the legal
// move generator (or validated via IsLegalMove beforehand); DoMove itself
// does not re-check legality of the resulting king safety for performance.
func (p *Position) DoMove(m Move) {
	us := p.nextPlayer
	them := us.Flip()

	hs := &p.history[p.historyCounter]
	hs.move = m
	hs.castlingRights = p.castlingRights
	hs.enPassantSquare = p.enPassantSquare
	hs.halfMoveClock = p.halfMoveClock
	hs.zobristKey = p.zobristKey
	hs.pawnZobristKey = p.pawnZobristKey
	p.historyCounter++

	from, to := m.From(), m.To()

	if m.CapturedType() != PtNone || m.MovedType() == Pawn {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	switch m.MoveType() {
	case Castling:
		p.doCastlingMove(us, from, to)
	case EnPassant:
		p.doEnPassantMove(us, them, from, to)
	case Promotion:
		p.doPromotionMove(us, m, from, to)
	default:
		p.doNormalMove(us, m, from, to)
	}

	p.updateCastlingRights(from)
	p.updateCastlingRights(to)

	p.clearEnPassant()
	if m.IsDoublePush() {
		epSq := Square(int(to) - int(us.MoveDirection()))
		if p.hasEnPassantCapturer(them, epSq) {
			p.enPassantSquare = epSq
			p.zobristKey ^= zobrist.EnPassantFile[epSq.FileOf()]
		}
	}

	p.nextPlayer = them
	p.zobristKey ^= zobrist.SideToMove
	p.nextHalfMoveNumber++

	if p.historyCounter < maxHistory {
		p.history[p.historyCounter].hasCheckFlag = -1
	}
}

// UndoMove reverts the last applied move.
func (p *Position) UndoMove() {
	p.historyCounter--
	hs := &p.history[p.historyCounter]
	m := hs.move

	them := p.nextPlayer
	us := them.Flip()
	p.nextPlayer = us
	p.nextHalfMoveNumber--

	from, to := m.From(), m.To()

	switch m.MoveType() {
	case Castling:
		p.undoCastlingMove(us, from, to)
	case EnPassant:
		p.undoEnPassantMove(us, them, from, to)
	case Promotion:
		p.undoPromotionMove(us, m, from, to)
	default:
		p.undoNormalMove(m, from, to)
	}

	p.castlingRights = hs.castlingRights
	p.enPassantSquare = hs.enPassantSquare
	p.halfMoveClock = hs.halfMoveClock
	p.zobristKey = hs.zobristKey
	p.pawnZobristKey = hs.pawnZobristKey

	// Clear the consumed undo record (keeping its check cache) and the next
	// ply's record so the position compares equal to its pre-make state.
	*hs = historyState{hasCheckFlag: hs.hasCheckFlag}
	if p.historyCounter+1 < maxHistory {
		p.history[p.historyCounter+1] = historyState{}
	}
}

// ApplyMove returns a new Position with m applied, leaving p untouched. It
// is a pure clone-then-make variant of DoMove for callers that cannot or
// should not mutate a shared Position (e.g. evaluating a sibling move
// without an explicit undo); the clone is a plain value copy since Position
// holds no pointers or slices, so the result agrees bit-for-bit with calling
// DoMove directly on a copy.
func (p *Position) ApplyMove(m Move) Position {
	clone := *p
	clone.DoMove(m)
	return clone
}

func (p *Position) doNormalMove(us Color, m Move, from, to Square) {
	if m.IsCapture() {
		p.zobristUpdatePiece(p.board[to], to)
		p.removePiece(to)
	}
	p.zobristUpdatePiece(p.board[from], from)
	pc := p.board[from]
	p.movePiece(from, to)
	p.zobristUpdatePiece(pc, to)
}

func (p *Position) undoNormalMove(m Move, from, to Square) {
	pc := p.board[to]
	p.removePiece(to)
	p.putPiece(pc, from)
	if m.IsCapture() {
		capturedPc := MakePiece(pc.ColorOf().Flip(), m.CapturedType())
		p.putPiece(capturedPc, to)
	}
}

func (p *Position) doEnPassantMove(us, them Color, from, to Square) {
	capSq := Square(int(to) - int(us.MoveDirection()))
	p.zobristUpdatePiece(p.board[capSq], capSq)
	p.removePiece(capSq)
	p.zobristUpdatePiece(p.board[from], from)
	pc := p.board[from]
	p.movePiece(from, to)
	p.zobristUpdatePiece(pc, to)
}

func (p *Position) undoEnPassantMove(us, them Color, from, to Square) {
	pc := p.board[to]
	p.removePiece(to)
	p.putPiece(pc, from)
	capSq := Square(int(to) - int(us.MoveDirection()))
	p.putPiece(MakePiece(them, Pawn), capSq)
}

func (p *Position) doPromotionMove(us Color, m Move, from, to Square) {
	if m.IsCapture() {
		p.zobristUpdatePiece(p.board[to], to)
		p.removePiece(to)
	}
	p.zobristUpdatePiece(p.board[from], from)
	p.removePiece(from)
	promoted := MakePiece(us, m.PromotionType())
	p.putPiece(promoted, to)
	p.zobristUpdatePiece(promoted, to)
}

func (p *Position) undoPromotionMove(us Color, m Move, from, to Square) {
	p.removePiece(to)
	p.putPiece(MakePiece(us, Pawn), from)
	if m.IsCapture() {
		capturedPc := MakePiece(us.Flip(), m.CapturedType())
		p.putPiece(capturedPc, to)
	}
}

func (p *Position) doCastlingMove(us Color, kingFrom, kingTo Square) {
	p.zobristUpdatePiece(p.board[kingFrom], kingFrom)
	p.movePiece(kingFrom, kingTo)
	p.zobristUpdatePiece(p.board[kingTo], kingTo)

	rookFrom, rookTo := castlingRookSquares(us, kingTo)
	p.zobristUpdatePiece(p.board[rookFrom], rookFrom)
	p.movePiece(rookFrom, rookTo)
	p.zobristUpdatePiece(p.board[rookTo], rookTo)
}

func (p *Position) undoCastlingMove(us Color, kingFrom, kingTo Square) {
	rookFrom, rookTo := castlingRookSquares(us, kingTo)
	p.movePiece(rookTo, rookFrom)
	p.movePiece(kingTo, kingFrom)
}

func castlingRookSquares(us Color, kingTo Square) (from, to Square) {
	if us == Light {
		if kingTo == SqG1 {
			return SqH1, SqF1
		}
		return SqA1, SqD1
	}
	if kingTo == SqG8 {
		return SqH8, SqF8
	}
	return SqA8, SqD8
}

func (p *Position) updateCastlingRights(sq Square) {
	cr := GetCastlingRights(sq)
	if cr == CastlingNone {
		return
	}
	if p.castlingRights.Has(cr) {
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		p.castlingRights.Remove(cr)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	}
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobrist.EnPassantFile[p.enPassantSquare.FileOf()]
		p.enPassantSquare = SqNone
	}
}

func (p *Position) hasEnPassantCapturer(them Color, epSquare Square) bool {
	return GetPawnAttacks(them.Flip(), epSquare)&p.piecesBb[them][Pawn] != 0
}

func (p *Position) zobristUpdatePiece(pc Piece, sq Square) {
	p.zobristKey ^= zobrist.Pieces[pc][sq]
	if pc.TypeOf() == Pawn || pc.TypeOf() == King {
		p.pawnZobristKey ^= zobrist.Pieces[pc][sq]
	}
}

// DoNullMove passes the side to move without making a move, used by Null
// Move Pruning. En passant rights are cleared, as a real move would also
// clear them after one ply.
func (p *Position) DoNullMove() {
	hs := &p.history[p.historyCounter]
	hs.move = MoveNone
	hs.castlingRights = p.castlingRights
	hs.enPassantSquare = p.enPassantSquare
	hs.halfMoveClock = p.halfMoveClock
	hs.zobristKey = p.zobristKey
	hs.pawnZobristKey = p.pawnZobristKey
	p.historyCounter++

	p.clearEnPassant()
	p.halfMoveClock++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobrist.SideToMove
	p.nextHalfMoveNumber++
	if p.historyCounter < maxHistory {
		p.history[p.historyCounter].hasCheckFlag = -1
	}
}

// UndoNullMove reverts DoNullMove.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	hs := &p.history[p.historyCounter]
	p.nextPlayer = p.nextPlayer.Flip()
	p.nextHalfMoveNumber--
	p.castlingRights = hs.castlingRights
	p.enPassantSquare = hs.enPassantSquare
	p.halfMoveClock = hs.halfMoveClock
	p.zobristKey = hs.zobristKey
	p.pawnZobristKey = hs.pawnZobristKey
}

// ---- attacks / legality ----------------------------------------------------

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occ := p.OccupiedAll()
	if GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0 {
		return true
	}
	if GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != 0 {
		return true
	}
	if GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != 0 {
		return true
	}
	bishopsQueens := p.piecesBb[by][Bishop] | p.piecesBb[by][Queen]
	if GetAttacksBb(Bishop, sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.piecesBb[by][Rook] | p.piecesBb[by][Queen]
	if GetAttacksBb(Rook, sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// HasCheck reports whether the side to move is currently in check. The
// result is cached per ply since move generation and search both ask
// repeatedly for the same position.
func (p *Position) HasCheck() bool {
	hs := &p.history[p.historyCounter]
	if hs.hasCheckFlag == -1 {
		if p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip()) {
			hs.hasCheckFlag = 1
		} else {
			hs.hasCheckFlag = 0
		}
	}
	return hs.hasCheckFlag == 1
}

// IsLegalMove reports whether m is legal, i.e. making it does not leave the
// mover's own king in check (king safety is the only legality condition pseudo-legal
// generation does not already guarantee). Per spec.md §4.4 step 3, this
// makes the move, tests the mover's king for check, and unmakes it, rather
// than trying to special-case every way a move could expose a check: a
// knight or pawn checking the king before the move, a king stepping next
// to an enemy knight, and a newly revealed slider all fall out of the same
// test.
func (p *Position) IsLegalMove(m Move) bool {
	us := p.nextPlayer
	if m.MoveType() == Castling && !p.isCastlingSafe(us, m.From(), m.To()) {
		return false
	}
	p.DoMove(m)
	legal := !p.IsAttacked(p.kingSquare[us], us.Flip())
	p.UndoMove()
	return legal
}

// isCastlingSafe checks the castling-only legality conditions that DoMove
// followed by a check test does not cover: the king may not castle out of
// check, nor pass through a square attacked by the opponent. The landing
// square itself is covered by IsLegalMove's generic post-move check.
func (p *Position) isCastlingSafe(us Color, kingFrom, kingTo Square) bool {
	them := us.Flip()
	if p.IsAttacked(kingFrom, them) {
		return false
	}
	dir := 1
	if kingTo < kingFrom {
		dir = -1
	}
	for step := Square(int(kingFrom) + dir); step != kingTo; step = Square(int(step) + dir) {
		if p.IsAttacked(step, them) {
			return false
		}
	}
	return true
}

// GivesCheck reports whether making m would put the opponent in check,
// including discovered checks from a piece moving off a pin line.
func (p *Position) GivesCheck(m Move) bool {
	p.DoMove(m)
	inCheck := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	p.UndoMove()
	return inCheck
}

// WasLegalMove reports whether the move just made with DoMove left the
// mover's own king safe, for callers that generate pseudo-legally and
// filter after the fact.
func (p *Position) WasLegalMove() bool {
	justMoved := p.nextPlayer.Flip()
	return !p.IsAttacked(p.kingSquare[justMoved], p.nextPlayer)
}

// IsCapturingMove reports whether m is a capture (including en passant).
func (p *Position) IsCapturingMove(m Move) bool {
	return m.IsCapture()
}

// HasInsufficientMaterial reports a dead-position draw: bare kings, king
// vs. king+minor, or king+bishop vs. king+bishop with same-colored bishops.
func (p *Position) HasInsufficientMaterial() bool {
	if p.piecesBb[Light][Pawn]|p.piecesBb[Dark][Pawn] != 0 {
		return false
	}
	if p.piecesBb[Light][Rook]|p.piecesBb[Dark][Rook]|p.piecesBb[Light][Queen]|p.piecesBb[Dark][Queen] != 0 {
		return false
	}
	lightMinors := p.piecesBb[Light][Knight].PopCount() + p.piecesBb[Light][Bishop].PopCount()
	darkMinors := p.piecesBb[Dark][Knight].PopCount() + p.piecesBb[Dark][Bishop].PopCount()
	if lightMinors == 0 && darkMinors == 0 {
		return true
	}
	if lightMinors == 1 && darkMinors == 0 && p.piecesBb[Light][Knight] == 0 {
		return true
	}
	if darkMinors == 1 && lightMinors == 0 && p.piecesBb[Dark][Knight] == 0 {
		return true
	}
	return false
}

// CheckRepetitions reports how many times the current Zobrist key has
// occurred before in the reachable undo history (counting only every
// other ply, since a repetition must return the same side to move).
func (p *Position) CheckRepetitions() int {
	count := 1
	last := p.historyCounter - 2
	limit := p.historyCounter - p.halfMoveClock
	for i := last; i >= limit && i >= 0; i -= 2 {
		if p.history[i].zobristKey == p.zobristKey {
			count++
		}
	}
	return count
}

func (p *Position) computeZobristKey() Key {
	var k Key
	for sq := SqA1; sq < SqNone; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			k ^= zobrist.Pieces[pc][sq]
		}
	}
	k ^= zobrist.CastlingKeys[p.castlingRights]
	if p.enPassantSquare != SqNone {
		k ^= zobrist.EnPassantFile[p.enPassantSquare.FileOf()]
	}
	if p.nextPlayer == Dark {
		k ^= zobrist.SideToMove
	}
	return k
}

func (p *Position) computePawnZobristKey() Key {
	var k Key
	for sq := SqA1; sq < SqNone; sq++ {
		if pc := p.board[sq]; pc != PieceNone && (pc.TypeOf() == Pawn || pc.TypeOf() == King) {
			k ^= zobrist.Pieces[pc][sq]
		}
	}
	return k
}
