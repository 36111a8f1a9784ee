// Package perft counts move-generator leaf nodes to a fixed depth, the
// standard way to validate a move generator against known reference
// positions.
package perft

import (
	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/movegen"
)

// Count returns the number of leaf positions reached by playing every
// legal move from b to depth plies. Count(b, 0) is 1 by definition.
func Count(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := movegen.Generate(b)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.Make(m)
		b.ChangeSide()
		nodes += Count(b, depth-1)
		b.ChangeSide()
		b.Unmake()
	}
	return nodes
}

// Divide returns the perft count broken down by each root move, keyed by
// move (a map, so it carries no ordering) — useful for comparing against a
// reference engine's divide output to localize a move-generation bug.
func Divide(b *board.Board, depth int) map[board.Move]uint64 {
	result := make(map[board.Move]uint64)
	if depth == 0 {
		return result
	}
	for _, m := range movegen.Generate(b) {
		b.Make(m)
		b.ChangeSide()
		result[m] = Count(b, depth-1)
		b.ChangeSide()
		b.Unmake()
	}
	return result
}
