package search

import (
	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/eval"
)

const killerBonus = 300

var pieceValue = [6]int{eval.PawnValue, eval.KnightValue, eval.BishopValue, eval.RookValue, eval.QueenValue, 0}

// orderMoves scores and sorts moves in place per spec.md §4.9: a hash
// move is pivoted to the front by swap (its score doesn't matter), then
// the rest are sorted descending by MVV/LVA and killer-move bonus.
func orderMoves(b *board.Board, moves []board.Move, hashMove board.Move, killers [2]board.Move) {
	start := 0
	if hashMove != board.NoMove {
		for i, m := range moves {
			if m == hashMove {
				moves[0], moves[i] = moves[i], moves[0]
				start = 1
				break
			}
		}
	}

	rest := moves[start:]
	scores := make([]int, len(rest))
	for i, m := range rest {
		scores[i] = scoreMove(b, m, killers)
	}
	insertionSortDescending(rest, scores)
}

func scoreMove(b *board.Board, m board.Move, killers [2]board.Move) int {
	if isCapture(b, m) {
		moverType := b.PieceAt(m.From()).Type
		capturedType := board.Pawn
		if m.Flag() != board.EnPassantCapture {
			capturedType = b.PieceAt(m.To()).Type
		}
		return 10*pieceValue[capturedType] - pieceValue[moverType]
	}
	if m == killers[0] || m == killers[1] {
		return killerBonus
	}
	return 0
}

// insertionSortDescending sorts moves by scores descending, moving both
// slices in lockstep. Insertion sort is the right tool here: move lists
// are short (a few dozen entries at most) and are already close to
// sorted after the first few iterative-deepening passes settle the
// table.
func insertionSortDescending(moves []board.Move, scores []int) {
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && scores[j-1] < scores[j] {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}
