package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// KiwipeteFEN is a well-known move-generator torture position, used in
// the engine's own perft suite.
const KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

var pieceFromLetter = map[byte]struct {
	Color     Color
	PieceType PieceType
}{
	'P': {White, Pawn}, 'N': {White, Knight}, 'B': {White, Bishop},
	'R': {White, Rook}, 'Q': {White, Queen}, 'K': {White, King},
	'p': {Black, Pawn}, 'n': {Black, Knight}, 'b': {Black, Bishop},
	'r': {Black, Rook}, 'q': {Black, Queen}, 'k': {Black, King},
}

// SetFEN parses fen and replaces the board's contents with it. On a
// malformed FEN it returns an error and leaves the board in an undefined
// partially-mutated state, matching spec.md §7: the search is never
// invoked on a malformed board, so the caller must check the error
// before using b further.
func (b *Board) SetFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("board: malformed FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	for i := 0; i < 12; i++ {
		b.Piece[i] = 0
	}
	b.White, b.Black = 0, 0
	for sq := 0; sq < 64; sq++ {
		b.mailbox[sq] = NoPiece
	}
	b.undo = b.undo[:0]
	b.CastlingRights = 0
	b.EPSquare = NoEPSquare
	b.Hash = 0

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("board: malformed FEN %q: need 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc, ok := pieceFromLetter[c]
			if !ok {
				return fmt.Errorf("board: malformed FEN %q: bad piece letter %q", fen, c)
			}
			if file > 7 {
				return fmt.Errorf("board: malformed FEN %q: rank %d overflows", fen, i)
			}
			sq := rank*8 + file
			b.SetPiece(sq, NewPiece(pc.Color, pc.PieceType))
			file++
		}
		if file != 8 {
			return fmt.Errorf("board: malformed FEN %q: rank %d has %d files, want 8", fen, i, file)
		}
	}

	switch fields[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return fmt.Errorf("board: malformed FEN %q: bad active color %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.CastlingRights |= CastleWK
			case 'Q':
				b.CastlingRights |= CastleWQ
			case 'k':
				b.CastlingRights |= CastleBK
			case 'q':
				b.CastlingRights |= CastleBQ
			default:
				return fmt.Errorf("board: malformed FEN %q: bad castling field %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return fmt.Errorf("board: malformed FEN %q: bad en passant field: %w", fen, err)
		}
		b.EPSquare = sq
	}

	// Halfmove clock and fullmove number (fields[4], fields[5]) are
	// parsed only to validate the FEN shape; the engine does not track
	// them (spec.md §3's Board data model has no such fields).
	if len(fields) >= 5 {
		if _, err := strconv.Atoi(fields[4]); err != nil {
			return fmt.Errorf("board: malformed FEN %q: bad halfmove clock %q", fen, fields[4])
		}
	}
	if len(fields) >= 6 {
		if _, err := strconv.Atoi(fields[5]); err != nil {
			return fmt.Errorf("board: malformed FEN %q: bad fullmove number %q", fen, fields[5])
		}
	}

	b.Hash = b.RecomputeHash()
	return nil
}

// FEN renders the board back to FEN text. The halfmove clock and
// fullmove number fields are emitted as "0 1" since the engine does not
// track them, matching spec.md §6.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.mailbox[rank*8+file]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
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
	}

	sb.WriteByte(' ')
	if b.EPSquare == NoEPSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(SquareName(b.EPSquare))
	}

	sb.WriteString(" 0 1")
	return sb.String()
}
