package bitboard

import "testing"

import "github.com/stretchr/testify/require"

func TestBitSetClearHas(t *testing.T) {
	var b Board
	b = b.Set(10)
	require.True(t, b.Has(10))
	require.False(t, b.Has(11))
	b = b.Clear(10)
	require.False(t, b.Has(10))
}

func TestFileRankSquare(t *testing.T) {
	require.Equal(t, 4, File(Square(4, 2)))
	require.Equal(t, 2, Rank(Square(4, 2)))
	require.Equal(t, 0, Square(0, 0))
	require.Equal(t, 63, Square(7, 7))
}

func TestLSBMSBPopLSB(t *testing.T) {
	b := Bit(3) | Bit(20) | Bit(61)
	require.Equal(t, 3, b.LSB())
	require.Equal(t, 61, b.MSB())
	require.Equal(t, 3, b.Count())

	first := b.PopLSB()
	require.Equal(t, 3, first)
	require.Equal(t, 2, b.Count())
	require.False(t, b.Has(3))
}

func TestBetweenAndFullLine(t *testing.T) {
	// a1 (0) and a8 (56) share a file.
	between := Between(0, 56)
	for r := 1; r < 7; r++ {
		require.True(t, between.Has(Square(0, r)), "rank %d should be between a1 and a8", r)
	}
	require.False(t, between.Has(0))
	require.False(t, between.Has(56))

	full := FullLine(0, 56)
	require.True(t, full.Has(Square(0, 7)))
	require.Equal(t, 8, full.Count())

	// squares sharing no line give zero masks.
	require.Equal(t, Board(0), Between(0, 10))
	require.Equal(t, Board(0), FullLine(0, 17))
}

func TestBetweenDiagonal(t *testing.T) {
	// a1 (0) to h8 (63) is the long diagonal.
	between := Between(0, 63)
	require.True(t, between.Has(Square(3, 3)))
	require.Equal(t, 6, between.Count())
}
