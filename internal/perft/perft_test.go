package perft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/zobrist"
)

func newBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b := board.New(zobrist.Default)
	require.NoError(t, b.SetFEN(fen))
	return b
}

func TestCountStartingPosition(t *testing.T) {
	want := map[int]uint64{0: 1, 1: 20, 2: 400, 3: 8902, 4: 197281}
	for depth, expect := range want {
		b := newBoard(t, board.StartFEN)
		require.Equal(t, expect, Count(b, depth), "depth %d", depth)
	}
}

func TestCountKiwipete(t *testing.T) {
	b := newBoard(t, board.KiwipeteFEN)
	require.Equal(t, uint64(48), Count(b, 1))
	require.Equal(t, uint64(2039), Count(b, 2))
	require.Equal(t, uint64(97862), Count(b, 3))
}

func TestDivideSumsToCount(t *testing.T) {
	b := newBoard(t, board.KiwipeteFEN)
	total := Count(b, 3)
	breakdown := Divide(b, 3)

	var sum uint64
	for _, n := range breakdown {
		sum += n
	}
	require.Equal(t, total, sum)
}

func TestDivideKeyCountMatchesRootMoveCount(t *testing.T) {
	b := newBoard(t, board.StartFEN)
	breakdown := Divide(b, 2)
	require.Len(t, breakdown, 20)
}

func TestUnmakeLeavesBoardObservablyUnchanged(t *testing.T) {
	b := newBoard(t, board.KiwipeteFEN)
	beforeHash := b.Hash
	beforeSide := b.SideToMove
	Count(b, 3)
	require.Equal(t, beforeHash, b.Hash)
	require.Equal(t, beforeSide, b.SideToMove)
}
