package board

import "fmt"

// Move packs a from-square, to-square, and flag into 16 bits: bits 0-5 =
// to, bits 6-11 = from, bits 12-15 = flag. The all-zero value (from==to
// ==0) is the canonical "no move" sentinel.
type Move uint16

// Flag names the kind of a move.
type Flag uint16

const (
	Quiet Flag = iota
	EnPassantCapture
	DoublePawnPush
	PromoQueen
	PromoRook
	PromoBishop
	PromoKnight
	Castle
)

const (
	toMask   = 0x3F
	fromMask = 0xFC0
	flagMask = 0xF000
)

// NewMove builds a packed move.
func NewMove(from, to int, flag Flag) Move {
	return Move(uint16(flag)<<12 | uint16(from)<<6 | uint16(to))
}

// NoMove is the sentinel representing "no move was found".
var NoMove = Move(0)

// From returns the origin square.
func (m Move) From() int { return int((uint16(m) & fromMask) >> 6) }

// To returns the destination square.
func (m Move) To() int { return int(uint16(m) & toMask) }

// Flag returns the move's flag.
func (m Move) Flag() Flag { return Flag((uint16(m) & flagMask) >> 12) }

// IsNone reports whether m is the "no move" sentinel.
func (m Move) IsNone() bool { return m.From() == m.To() }

// SameEndpoints compares only the from/to squares of two moves, ignoring
// the flag. Used to reconcile a UCI long-algebraic move (which carries no
// flag) against the generator's legal-move list.
func (m Move) SameEndpoints(other Move) bool {
	return m.From() == other.From() && m.To() == other.To()
}

// IsPromotion reports whether m's flag is one of the four promotion flags.
func (f Flag) IsPromotion() bool {
	return f == PromoQueen || f == PromoRook || f == PromoBishop || f == PromoKnight
}

// PromotionType returns the piece type a promotion flag produces.
// Only valid when f.IsPromotion().
func (f Flag) PromotionType() PieceType {
	switch f {
	case PromoQueen:
		return Queen
	case PromoRook:
		return Rook
	case PromoBishop:
		return Bishop
	case PromoKnight:
		return Knight
	}
	panic("PromotionType called on a non-promotion flag")
}

var promoLetter = map[Flag]byte{
	PromoQueen:  'q',
	PromoRook:   'r',
	PromoBishop: 'b',
	PromoKnight: 'n',
}

var squareNames = buildSquareNames()

func buildSquareNames() [64]string {
	var names [64]string
	for sq := 0; sq < 64; sq++ {
		file := rune('a' + sq%8)
		rank := rune('1' + sq/8)
		names[sq] = string(file) + string(rank)
	}
	return names
}

// SquareName renders a square index as algebraic notation, e.g. 0 -> "a1".
func SquareName(sq int) string { return squareNames[sq] }

// ParseSquare parses algebraic notation ("a1".."h8") into a square index.
func ParseSquare(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("board: invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, fmt.Errorf("board: invalid square %q", s)
	}
	return rank*8 + file, nil
}

// UCI renders m in UCI long-algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := SquareName(m.From()) + SquareName(m.To())
	if l, ok := promoLetter[m.Flag()]; ok {
		s += string(l)
	}
	return s
}

// String renders m in a human-readable form used for debug printing.
// Only en passant captures are marked with "x"; a move carries no
// captured piece, so every other move, capture or not, uses "-".
func (m Move) String() string {
	sep := "-"
	if m.Flag() == EnPassantCapture {
		sep = "x"
	}
	s := SquareName(m.From()) + sep + SquareName(m.To())
	if l, ok := promoLetter[m.Flag()]; ok {
		s += string(l)
	}
	return s
}
