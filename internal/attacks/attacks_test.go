package attacks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algheim/kungknuffaren/internal/bitboard"
)

func TestKnightCornerAttacks(t *testing.T) {
	// a1 (0) has exactly two knight moves: b3 and c2.
	mask := Knight[0]
	require.Equal(t, 2, mask.Count())
	require.True(t, mask.Has(bitboard.Square(1, 2)))
	require.True(t, mask.Has(bitboard.Square(2, 1)))
}

func TestKingCenterAttacks(t *testing.T) {
	mask := King[bitboard.Square(4, 4)]
	require.Equal(t, 8, mask.Count())
}

func TestPawnAttacksDontWrapFiles(t *testing.T) {
	// a4 pawn attacks only b5, never wrapping to h5.
	mask := WhitePawnAttack[bitboard.Square(0, 3)]
	require.Equal(t, 1, mask.Count())
	require.True(t, mask.Has(bitboard.Square(1, 4)))
}

func TestCardinalSlideStopsAtBlocker(t *testing.T) {
	// Rook on a1, blocker on a4: attacks a2, a3, a4 (file) plus the
	// whole empty first rank.
	occ := bitboard.Bit(bitboard.Square(0, 3))
	attacks := Cardinal(0, occ)
	require.True(t, attacks.Has(bitboard.Square(0, 1)))
	require.True(t, attacks.Has(bitboard.Square(0, 2)))
	require.True(t, attacks.Has(bitboard.Square(0, 3)))
	require.False(t, attacks.Has(bitboard.Square(0, 4)))
	require.True(t, attacks.Has(bitboard.Square(7, 0)))
}

func TestIntercardinalSlideStopsAtBlocker(t *testing.T) {
	// Bishop on a1, blocker on d4.
	occ := bitboard.Bit(bitboard.Square(3, 3))
	attacks := Intercardinal(0, occ)
	require.True(t, attacks.Has(bitboard.Square(1, 1)))
	require.True(t, attacks.Has(bitboard.Square(2, 2)))
	require.True(t, attacks.Has(bitboard.Square(3, 3)))
	require.False(t, attacks.Has(bitboard.Square(4, 4)))
}

func TestDirectionClassification(t *testing.T) {
	require.True(t, North.IsCardinal())
	require.False(t, North.IsIntercardinal())
	require.True(t, NorthEast.IsIntercardinal())
	require.False(t, NorthEast.IsCardinal())
}
