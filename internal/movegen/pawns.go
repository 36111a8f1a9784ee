package movegen

import (
	"github.com/algheim/kungknuffaren/internal/attacks"
	"github.com/algheim/kungknuffaren/internal/bitboard"
	"github.com/algheim/kungknuffaren/internal/board"
)

// genPawnMoves emits pushes, double pushes, captures, promotions, and en
// passant captures for the side to move's pawns.
//
// En passant gets two extra checks beyond the usual pin/check mask, per
// spec.md §4.5.9: first, if the side to move is in check from the pawn
// that just double-pushed, the en passant square is added to the check
// mask (capturing it resolves the check even though the destination
// square itself isn't where the checker stands). Second, regardless of
// check or ordinary pin status, removing both the moving pawn and the
// captured pawn from the board can itself expose the king to a rook or
// queen along the rank they shared — a pin no single-piece pin scan
// catches, so every en passant candidate is simulated before it's kept.
func genPawnMoves(b *board.Board, us, enemy board.Color, enemyBB, occ bitboard.Board, kingSq int, checkMask bitboard.Board, pieceMask func(int, bitboard.Board) bitboard.Board, moves *[]board.Move, capturesOnly bool) {
	pawns := b.Piece[board.KindIndex(us, board.Pawn)]

	var pushTable, attackTable [64]bitboard.Board
	var doubleRank, promoRank int
	if us == board.White {
		pushTable, attackTable = attacks.WhitePawnPush, attacks.WhitePawnAttack
		doubleRank, promoRank = 1, 7
	} else {
		pushTable, attackTable = attacks.BlackPawnPush, attacks.BlackPawnAttack
		doubleRank, promoRank = 6, 0
	}

	epCheckMask := checkMask
	epCaptureSq := -1
	if b.EPSquare != board.NoEPSquare {
		epCaptureSq = b.EPSquare - 8
		if us == board.Black {
			epCaptureSq = b.EPSquare + 8
		}
		if checkMask.Has(epCaptureSq) {
			epCheckMask = checkMask | bitboard.Bit(b.EPSquare)
		}
	}

	p := pawns
	for p != 0 {
		from := p.PopLSB()
		allowed := pieceMask(from, checkMask)

		if !capturesOnly {
			oneStep := pushTable[from] &^ occ
			if oneStep != 0 {
				to := oneStep.LSB()
				if allowed.Has(to) {
					addPawnMoves(moves, from, to, bitboard.Rank(to) == promoRank)
				}
				if bitboard.Rank(from) == doubleRank {
					twoStep := pushTable[to] &^ occ
					if twoStep != 0 {
						to2 := twoStep.LSB()
						if allowed.Has(to2) {
							*moves = append(*moves, board.NewMove(from, to2, board.DoublePawnPush))
						}
					}
				}
			}
		}

		captures := attackTable[from] & enemyBB & allowed
		for captures != 0 {
			to := captures.PopLSB()
			addPawnMoves(moves, from, to, bitboard.Rank(to) == promoRank)
		}

		if epCaptureSq >= 0 && attackTable[from].Has(b.EPSquare) {
			epAllowed := pieceMask(from, epCheckMask)
			if epAllowed.Has(b.EPSquare) && enPassantSafe(b, enemy, from, epCaptureSq, b.EPSquare, kingSq) {
				*moves = append(*moves, board.NewMove(from, b.EPSquare, board.EnPassantCapture))
			}
		}
	}
}

func addPawnMoves(moves *[]board.Move, from, to int, promotes bool) {
	if !promotes {
		*moves = append(*moves, board.NewMove(from, to, board.Quiet))
		return
	}
	*moves = append(*moves, board.NewMove(from, to, board.PromoQueen))
	*moves = append(*moves, board.NewMove(from, to, board.PromoRook))
	*moves = append(*moves, board.NewMove(from, to, board.PromoBishop))
	*moves = append(*moves, board.NewMove(from, to, board.PromoKnight))
}

// enPassantSafe simulates the double pawn removal an en passant capture
// performs and checks whether that alone would expose the king to a
// rook or queen (along the vacated rank) or a bishop or queen (along a
// diagonal the captured pawn blocked).
func enPassantSafe(b *board.Board, enemy board.Color, from, capSq, epSquare, kingSq int) bool {
	occ := b.Occupied().Clear(from).Clear(capSq).Set(epSquare)
	bishopsQueens := b.Piece[board.KindIndex(enemy, board.Bishop)] | b.Piece[board.KindIndex(enemy, board.Queen)]
	rooksQueens := b.Piece[board.KindIndex(enemy, board.Rook)] | b.Piece[board.KindIndex(enemy, board.Queen)]
	if attacks.Intercardinal(kingSq, occ)&bishopsQueens != 0 {
		return false
	}
	if attacks.Cardinal(kingSq, occ)&rooksQueens != 0 {
		return false
	}
	return true
}
