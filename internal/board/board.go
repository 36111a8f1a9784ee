// Package board implements the incremental chess position representation:
// twelve piece bitboards plus color aggregates, castling rights, en
// passant target, an incrementally maintained Zobrist hash, and the
// make/unmake pair that is the sole way to mutate a Board.
package board

import (
	"fmt"
	"strings"

	"github.com/algheim/kungknuffaren/internal/bitboard"
	"github.com/algheim/kungknuffaren/internal/zobrist"
)

// Castling right bits, packed into a 4-bit nibble.
const (
	CastleWK uint8 = 1 << 3
	CastleWQ uint8 = 1 << 2
	CastleBK uint8 = 1 << 1
	CastleBQ uint8 = 1 << 0
	CastleAll = CastleWK | CastleWQ | CastleBK | CastleBQ
)

// NoEPSquare marks the absence of an en passant target.
const NoEPSquare = -1

// Named squares used by castling and en-passant arithmetic.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 = 0, 1, 2, 3, 4, 5, 6, 7
	A8, B8, C8, D8, E8, F8, G8, H8 = 56, 57, 58, 59, 60, 61, 62, 63
)

// UndoRecord carries exactly the state Unmake needs to reverse a Make:
// the move, what (if anything) it captured and where, the piece that
// moved (so promotions and castling reverse correctly), and the prior
// castling rights and en passant target.
type UndoRecord struct {
	Move           Move
	CapturedPiece  Piece
	CaptureSquare  int
	MoverPiece     Piece
	PriorCastling  uint8
	PriorEPSquare  int
}

// Board is the engine's position representation.
type Board struct {
	Piece [12]bitboard.Board
	White bitboard.Board
	Black bitboard.Board

	SideToMove     Color
	CastlingRights uint8
	EPSquare       int
	Hash           uint64

	keys    *zobrist.Keys
	mailbox [64]Piece
	undo    []UndoRecord
}

// New returns an empty board wired to the given Zobrist key table.
func New(keys *zobrist.Keys) *Board {
	return &Board{
		EPSquare: NoEPSquare,
		keys:     keys,
	}
}

// NewStart returns a board set to the standard starting position, using
// the process-wide default Zobrist keys.
func NewStart() *Board {
	b := New(zobrist.Default)
	if err := b.SetFEN(StartFEN); err != nil {
		panic("board: start FEN failed to parse: " + err.Error())
	}
	return b
}

// PieceAt returns the occupant of sq, or NoPiece if empty.
func (b *Board) PieceAt(sq int) Piece { return b.mailbox[sq] }

// ColorAt returns the color of the occupant of sq and true, or
// (zero value, false) if sq is empty.
func (b *Board) ColorAt(sq int) (Color, bool) {
	p := b.mailbox[sq]
	if p.IsEmpty() {
		return 0, false
	}
	return p.Color, true
}

// Occupied returns the combined occupancy of both colors.
func (b *Board) Occupied() bitboard.Board { return b.White | b.Black }

// ColorBB returns the aggregate bitboard for c.
func (b *Board) ColorBB(c Color) bitboard.Board {
	if c == White {
		return b.White
	}
	return b.Black
}

// King returns the square of c's king. Callers rely on the board
// invariant that exactly one king of each color is on the board.
func (b *Board) King(c Color) int {
	kind := KindIndex(c, King)
	return b.Piece[kind].LSB()
}

// SetPiece is the sole mutator of the piece bitboards, the mailbox, and
// their Zobrist contribution: it removes whatever currently occupies sq
// (if anything), then installs p (which may itself be NoPiece).
func (b *Board) SetPiece(sq int, p Piece) {
	old := b.mailbox[sq]
	if !old.IsEmpty() {
		k := KindIndex(old.Color, old.Type)
		b.Piece[k] = b.Piece[k].Clear(sq)
		b.clearColor(old.Color, sq)
		b.Hash ^= b.keys.Piece[k][sq]
	}
	b.mailbox[sq] = p
	if !p.IsEmpty() {
		k := KindIndex(p.Color, p.Type)
		b.Piece[k] = b.Piece[k].Set(sq)
		b.setColor(p.Color, sq)
		b.Hash ^= b.keys.Piece[k][sq]
	}
}

func (b *Board) clearColor(c Color, sq int) {
	if c == White {
		b.White = b.White.Clear(sq)
	} else {
		b.Black = b.Black.Clear(sq)
	}
}

func (b *Board) setColor(c Color, sq int) {
	if c == White {
		b.White = b.White.Set(sq)
	} else {
		b.Black = b.Black.Set(sq)
	}
}

// ChangeSide toggles the side to move and XORs its Zobrist constant.
// Make/Unmake never call this themselves; the searcher toggles it around
// both sides of a recursive call so it can be shared between the two.
func (b *Board) ChangeSide() {
	b.SideToMove = b.SideToMove.Opposite()
	b.Hash ^= b.keys.SideToMove
}

// castleRookSquares maps a king's castling destination to the rook's
// from/to squares.
var castleRookSquares = map[int][2]int{
	G1: {H1, F1},
	C1: {A1, D1},
	G8: {H8, F8},
	C8: {A8, D8},
}

// cornerRight maps a corner square to the castling right it governs.
var cornerRight = map[int]uint8{
	A1: CastleWQ,
	H1: CastleWK,
	A8: CastleBQ,
	H8: CastleBK,
}

// Make applies move to the board. It does not toggle SideToMove; the
// caller does that separately (see ChangeSide).
func (b *Board) Make(move Move) {
	from, to, flag := move.From(), move.To(), move.Flag()
	mover := b.mailbox[from]

	rec := UndoRecord{
		Move:          move,
		MoverPiece:    mover,
		PriorCastling: b.CastlingRights,
		PriorEPSquare: b.EPSquare,
	}

	if b.EPSquare != NoEPSquare {
		b.Hash ^= b.keys.EPFile[bitboard.File(b.EPSquare)]
	}
	b.EPSquare = NoEPSquare

	b.Hash ^= b.keys.Castling[b.CastlingRights]
	b.updateCastlingRights(from, to)
	b.Hash ^= b.keys.Castling[b.CastlingRights]

	switch flag {
	case DoublePawnPush:
		rec.CapturedPiece = NoPiece
		rec.CaptureSquare = -1
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, mover)
		b.EPSquare = (from + to) / 2
		b.Hash ^= b.keys.EPFile[bitboard.File(b.EPSquare)]

	case EnPassantCapture:
		capSq := to - 8
		if mover.Color == Black {
			capSq = to + 8
		}
		rec.CapturedPiece = b.mailbox[capSq]
		rec.CaptureSquare = capSq
		b.SetPiece(capSq, NoPiece)
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, mover)

	case Castle:
		rec.CapturedPiece = NoPiece
		rec.CaptureSquare = -1
		rook := castleRookSquares[to]
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, mover)
		rookPiece := b.mailbox[rook[0]]
		b.SetPiece(rook[0], NoPiece)
		b.SetPiece(rook[1], rookPiece)

	case PromoQueen, PromoRook, PromoBishop, PromoKnight:
		rec.CapturedPiece = b.mailbox[to]
		rec.CaptureSquare = to
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, NewPiece(mover.Color, flag.PromotionType()))

	default: // Quiet
		rec.CapturedPiece = b.mailbox[to]
		rec.CaptureSquare = to
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, mover)
	}

	b.undo = append(b.undo, rec)
}

// Unmake reverses the most recent Make. It is a fatal error (panic) to
// call Unmake with no pending move, which would indicate a searcher or
// generator bug, not a recoverable condition.
func (b *Board) Unmake() {
	n := len(b.undo)
	if n == 0 {
		panic("board: Unmake called with empty undo stack")
	}
	rec := b.undo[n-1]
	b.undo = b.undo[:n-1]

	if b.EPSquare != NoEPSquare {
		b.Hash ^= b.keys.EPFile[bitboard.File(b.EPSquare)]
	}
	b.EPSquare = rec.PriorEPSquare
	if b.EPSquare != NoEPSquare {
		b.Hash ^= b.keys.EPFile[bitboard.File(b.EPSquare)]
	}

	b.Hash ^= b.keys.Castling[b.CastlingRights]
	b.CastlingRights = rec.PriorCastling
	b.Hash ^= b.keys.Castling[b.CastlingRights]

	from, to, flag := rec.Move.From(), rec.Move.To(), rec.Move.Flag()

	switch flag {
	case Castle:
		rook := castleRookSquares[to]
		rookPiece := b.mailbox[rook[1]]
		b.SetPiece(rook[1], NoPiece)
		b.SetPiece(rook[0], rookPiece)
		b.SetPiece(to, NoPiece)
		b.SetPiece(from, rec.MoverPiece)

	case EnPassantCapture:
		b.SetPiece(to, NoPiece)
		b.SetPiece(from, rec.MoverPiece)
		b.SetPiece(rec.CaptureSquare, rec.CapturedPiece)

	case PromoQueen, PromoRook, PromoBishop, PromoKnight:
		b.SetPiece(to, rec.CapturedPiece)
		b.SetPiece(from, rec.MoverPiece)

	default: // Quiet, DoublePawnPush
		b.SetPiece(from, rec.MoverPiece)
		b.SetPiece(to, rec.CapturedPiece)
	}
}

// updateCastlingRights applies the table from spec.md §4.4: a king move
// clears both of that side's rights; a rook leaving, or any piece
// arriving on, a corner square clears the corresponding right.
func (b *Board) updateCastlingRights(from, to int) {
	switch from {
	case E1:
		b.CastlingRights &^= CastleWK | CastleWQ
	case E8:
		b.CastlingRights &^= CastleBK | CastleBQ
	}
	if right, ok := cornerRight[from]; ok {
		b.CastlingRights &^= right
	}
	if right, ok := cornerRight[to]; ok {
		b.CastlingRights &^= right
	}
}

// HasUndo reports whether the undo stack is non-empty, matching spec.md
// §3's invariant that it is non-empty iff a move has been pushed and not
// popped.
func (b *Board) HasUndo() bool { return len(b.undo) > 0 }

// RecomputeHash scans the whole position and returns the hash that
// should match b.Hash; used by invariant checks and tests to catch
// Zobrist drift between the incremental and from-scratch computation.
func (b *Board) RecomputeHash() uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		p := b.mailbox[sq]
		if !p.IsEmpty() {
			h ^= b.keys.Piece[KindIndex(p.Color, p.Type)][sq]
		}
	}
	h ^= b.keys.Castling[b.CastlingRights]
	if b.EPSquare != NoEPSquare {
		h ^= b.keys.EPFile[bitboard.File(b.EPSquare)]
	}
	if b.SideToMove == Black {
		h ^= b.keys.SideToMove
	}
	return h
}

// String renders an ASCII board with rank/file labels, side to move,
// castling rights, en passant target, and the current Zobrist hash —
// the engine's debug/"print" aid, cosmetic per spec.md §1.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d | ", rank+1)
		for file := 0; file < 8; file++ {
			sq := bitboard.Square(file, rank)
			p := b.mailbox[sq]
			ch := byte('.')
			if !p.IsEmpty() {
				ch = p.Letter()
			}
			fmt.Fprintf(&sb, "%c ", ch)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ----------------\n")
	sb.WriteString("    a b c d e f g h\n")
	if b.SideToMove == White {
		sb.WriteString("side to move: white\n")
	} else {
		sb.WriteString("side to move: black\n")
	}
	sb.WriteString("castling: ")
	if b.CastlingRights&CastleWK != 0 {
		sb.WriteByte('K')
	}
	if b.CastlingRights&CastleWQ != 0 {
		sb.WriteByte('Q')
	}
	if b.CastlingRights&CastleBK != 0 {
		sb.WriteByte('k')
	}
	if b.CastlingRights&CastleBQ != 0 {
		sb.WriteByte('q')
	}
	sb.WriteString("\nen passant: ")
	if b.EPSquare == NoEPSquare {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(b.EPSquare))
	}
	fmt.Fprintf(&sb, "\nzobrist: 0x%x\n", b.Hash)
	return sb.String()
}
