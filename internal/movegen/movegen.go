// Package movegen implements strictly-legal move generation: pseudo-legal
// piece moves filtered by pin rays and check masks, built on the
// precomputed attack tables in internal/attacks.
//
// Generate never writes to its board argument: the king x-ray, the en
// passant double-pin check and the king-in-check probes all work on local
// copies of the occupancy bitboard.
package movegen

import (
	"github.com/algheim/kungknuffaren/internal/attacks"
	"github.com/algheim/kungknuffaren/internal/bitboard"
	"github.com/algheim/kungknuffaren/internal/board"
)

const allSquares = bitboard.Board(^uint64(0))

// Generate returns every strictly legal move for the side to move.
func Generate(b *board.Board) []board.Move {
	moves := make([]board.Move, 0, 48)
	generate(b, &moves, false)
	return moves
}

// GenerateCaptures returns the subset of legal moves that capture a
// piece, including en passant captures.
func GenerateCaptures(b *board.Board) []board.Move {
	moves := make([]board.Move, 0, 24)
	generate(b, &moves, true)
	return moves
}

func generate(b *board.Board, moves *[]board.Move, capturesOnly bool) {
	us := b.SideToMove
	enemy := us.Opposite()
	friendly := b.ColorBB(us)
	enemyBB := b.ColorBB(enemy)
	occ := b.Occupied()
	kingSq := b.King(us)

	unsafe := unsafeSquares(b, us)
	checkers := attackersOf(b, kingSq, enemy, occ)
	numCheckers := checkers.Count()

	genKingMoves(kingSq, friendly, enemyBB, unsafe, moves, capturesOnly)

	if numCheckers >= 2 {
		return
	}

	checkMask := allSquares
	if numCheckers == 1 {
		checkerSq := checkers.LSB()
		checkMask = bitboard.Between(kingSq, checkerSq) | bitboard.Bit(checkerSq)
	}

	pinned, pinRay := pinnedPieces(b, us, kingSq)

	if numCheckers == 0 && !capturesOnly {
		genCastling(b, us, enemyBB|friendly, unsafe, moves)
	}

	pieceMask := func(sq int, cm bitboard.Board) bitboard.Board {
		if pinned.Has(sq) {
			return pinRay[sq] & cm
		}
		return cm
	}

	genPawnMoves(b, us, enemy, enemyBB, occ, kingSq, checkMask, pieceMask, moves, capturesOnly)

	knights := b.Piece[board.KindIndex(us, board.Knight)]
	for knights != 0 {
		from := knights.PopLSB()
		targets := attacks.Knight[from] &^ friendly & pieceMask(from, checkMask)
		emit(moves, from, targets, enemyBB, capturesOnly)
	}

	bishops := b.Piece[board.KindIndex(us, board.Bishop)]
	for bishops != 0 {
		from := bishops.PopLSB()
		targets := attacks.Intercardinal(from, occ) &^ friendly & pieceMask(from, checkMask)
		emit(moves, from, targets, enemyBB, capturesOnly)
	}

	rooks := b.Piece[board.KindIndex(us, board.Rook)]
	for rooks != 0 {
		from := rooks.PopLSB()
		targets := attacks.Cardinal(from, occ) &^ friendly & pieceMask(from, checkMask)
		emit(moves, from, targets, enemyBB, capturesOnly)
	}

	queens := b.Piece[board.KindIndex(us, board.Queen)]
	for queens != 0 {
		from := queens.PopLSB()
		targets := (attacks.Cardinal(from, occ) | attacks.Intercardinal(from, occ)) &^ friendly & pieceMask(from, checkMask)
		emit(moves, from, targets, enemyBB, capturesOnly)
	}
}

func emit(moves *[]board.Move, from int, targets, enemyBB bitboard.Board, capturesOnly bool) {
	for targets != 0 {
		to := targets.PopLSB()
		if capturesOnly && !enemyBB.Has(to) {
			continue
		}
		*moves = append(*moves, board.NewMove(from, to, board.Quiet))
	}
}

func genKingMoves(kingSq int, friendly, enemyBB, unsafe bitboard.Board, moves *[]board.Move, capturesOnly bool) {
	targets := attacks.King[kingSq] &^ friendly &^ unsafe
	for targets != 0 {
		to := targets.PopLSB()
		if capturesOnly && !enemyBB.Has(to) {
			continue
		}
		*moves = append(*moves, board.NewMove(kingSq, to, board.Quiet))
	}
}

// genCastling emits castle moves, requiring: the right is still held, the
// squares between king and rook are empty, and the king does not start,
// pass through, or land on an attacked square.
func genCastling(b *board.Board, us board.Color, occ, unsafe bitboard.Board, moves *[]board.Move) {
	if us == board.White {
		if b.CastlingRights&board.CastleWK != 0 &&
			occ&(bitboard.Bit(board.F1)|bitboard.Bit(board.G1)) == 0 &&
			!unsafe.Has(board.E1) && !unsafe.Has(board.F1) && !unsafe.Has(board.G1) {
			*moves = append(*moves, board.NewMove(board.E1, board.G1, board.Castle))
		}
		if b.CastlingRights&board.CastleWQ != 0 &&
			occ&(bitboard.Bit(board.B1)|bitboard.Bit(board.C1)|bitboard.Bit(board.D1)) == 0 &&
			!unsafe.Has(board.E1) && !unsafe.Has(board.D1) && !unsafe.Has(board.C1) {
			*moves = append(*moves, board.NewMove(board.E1, board.C1, board.Castle))
		}
	} else {
		if b.CastlingRights&board.CastleBK != 0 &&
			occ&(bitboard.Bit(board.F8)|bitboard.Bit(board.G8)) == 0 &&
			!unsafe.Has(board.E8) && !unsafe.Has(board.F8) && !unsafe.Has(board.G8) {
			*moves = append(*moves, board.NewMove(board.E8, board.G8, board.Castle))
		}
		if b.CastlingRights&board.CastleBQ != 0 &&
			occ&(bitboard.Bit(board.B8)|bitboard.Bit(board.C8)|bitboard.Bit(board.D8)) == 0 &&
			!unsafe.Has(board.E8) && !unsafe.Has(board.D8) && !unsafe.Has(board.C8) {
			*moves = append(*moves, board.NewMove(board.E8, board.C8, board.Castle))
		}
	}
}

// unsafeSquares computes the squares the enemy attacks, with our own
// king removed from the occupancy so sliding attackers x-ray through it
// (otherwise the king could "hide behind itself" and slide one further
// square along the attacker's ray).
func unsafeSquares(b *board.Board, us board.Color) bitboard.Board {
	enemy := us.Opposite()
	occ := b.Occupied().Clear(b.King(us))
	var unsafe bitboard.Board

	pawns := b.Piece[board.KindIndex(enemy, board.Pawn)]
	for pawns != 0 {
		sq := pawns.PopLSB()
		if enemy == board.White {
			unsafe |= attacks.WhitePawnAttack[sq]
		} else {
			unsafe |= attacks.BlackPawnAttack[sq]
		}
	}
	knights := b.Piece[board.KindIndex(enemy, board.Knight)]
	for knights != 0 {
		unsafe |= attacks.Knight[knights.PopLSB()]
	}
	king := b.Piece[board.KindIndex(enemy, board.King)]
	if king != 0 {
		unsafe |= attacks.King[king.LSB()]
	}
	bishopsQueens := b.Piece[board.KindIndex(enemy, board.Bishop)] | b.Piece[board.KindIndex(enemy, board.Queen)]
	for bishopsQueens != 0 {
		unsafe |= attacks.Intercardinal(bishopsQueens.PopLSB(), occ)
	}
	rooksQueens := b.Piece[board.KindIndex(enemy, board.Rook)] | b.Piece[board.KindIndex(enemy, board.Queen)]
	for rooksQueens != 0 {
		unsafe |= attacks.Cardinal(rooksQueens.PopLSB(), occ)
	}
	return unsafe
}

// IsInCheck reports whether the side to move's king is currently attacked.
func IsInCheck(b *board.Board) bool {
	us := b.SideToMove
	kingSq := b.King(us)
	return attackersOf(b, kingSq, us.Opposite(), b.Occupied()) != 0
}

// attackersOf returns the set of byColor's pieces that attack sq given
// occupancy occ (which callers may edit to x-ray through a piece).
func attackersOf(b *board.Board, sq int, byColor board.Color, occ bitboard.Board) bitboard.Board {
	var result bitboard.Board
	bishopsQueens := b.Piece[board.KindIndex(byColor, board.Bishop)] | b.Piece[board.KindIndex(byColor, board.Queen)]
	rooksQueens := b.Piece[board.KindIndex(byColor, board.Rook)] | b.Piece[board.KindIndex(byColor, board.Queen)]
	result |= attacks.Intercardinal(sq, occ) & bishopsQueens
	result |= attacks.Cardinal(sq, occ) & rooksQueens
	result |= attacks.Knight[sq] & b.Piece[board.KindIndex(byColor, board.Knight)]
	result |= attacks.King[sq] & b.Piece[board.KindIndex(byColor, board.King)]
	if byColor == board.White {
		result |= attacks.BlackPawnAttack[sq] & b.Piece[board.KindIndex(board.White, board.Pawn)]
	} else {
		result |= attacks.WhitePawnAttack[sq] & b.Piece[board.KindIndex(board.Black, board.Pawn)]
	}
	return result
}

// pinnedPieces finds friendly pieces pinned to the king by an enemy
// slider along one of the eight ray directions, per spec.md §4.5.8: walk
// each direction outward from the king; if the first occupant is ours
// and the second is an enemy slider attacking along that direction, the
// first occupant is pinned, and may move only within the line between
// the king and the pinner (inclusive of capturing the pinner).
func pinnedPieces(b *board.Board, us board.Color, kingSq int) (bitboard.Board, map[int]bitboard.Board) {
	var pinned bitboard.Board
	pinRay := make(map[int]bitboard.Board, 8)
	occ := b.Occupied()

	for d := attacks.North; d <= attacks.NorthWest; d++ {
		line := attacks.Ray[kingSq][d] & occ
		if line == 0 {
			continue
		}
		first, ok := nearestInDirection(line, d)
		if !ok {
			continue
		}
		firstColor, present := b.ColorAt(first)
		if !present || firstColor != us {
			continue
		}
		rest := line.Clear(first)
		if rest == 0 {
			continue
		}
		second, ok := nearestInDirection(rest, d)
		if !ok {
			continue
		}
		secondPiece := b.PieceAt(second)
		if secondPiece.Color == us {
			continue
		}
		isSlider := (d.IsCardinal() && (secondPiece.Type == board.Rook || secondPiece.Type == board.Queen)) ||
			(d.IsIntercardinal() && (secondPiece.Type == board.Bishop || secondPiece.Type == board.Queen))
		if !isSlider {
			continue
		}
		pinned = pinned.Set(first)
		pinRay[first] = bitboard.Between(kingSq, second) | bitboard.Bit(second)
	}
	return pinned, pinRay
}

// nearestInDirection returns the set bit in mask nearest the ray origin:
// North/NorthEast/East/NorthWest rays increase square index as they move
// outward (so the nearest bit is the smallest), the other four decrease
// it (so the nearest bit is the largest).
func nearestInDirection(mask bitboard.Board, d attacks.Direction) (int, bool) {
	if mask == 0 {
		return 0, false
	}
	switch d {
	case attacks.North, attacks.NorthEast, attacks.East, attacks.NorthWest:
		return mask.LSB(), true
	default:
		return mask.MSB(), true
	}
}
