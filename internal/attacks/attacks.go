// Package attacks precomputes, once at process start, the pseudo-attack
// bitboards for kings, knights and pawns on every square, the eight
// edge-to-edge ray masks used by pin detection, and the file, rank and
// diagonal masks that Cardinal and Intercardinal use to compute sliding
// attacks on demand. There is no blocker-free table for rooks, bishops
// or queens.
// Everything here is built by a package init() and is read-only
// afterwards, safe to share across an entire search.
package attacks

import (
	"math/bits"

	"github.com/algheim/kungknuffaren/internal/bitboard"
)

// Direction names one of the eight compass rays from a square.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// IsCardinal reports whether d is a rook-like (orthogonal) direction.
func (d Direction) IsCardinal() bool {
	return d == North || d == South || d == East || d == West
}

// IsIntercardinal reports whether d is a bishop-like (diagonal) direction.
func (d Direction) IsIntercardinal() bool {
	return d == NorthEast || d == SouthEast || d == SouthWest || d == NorthWest
}

// IsNorthSouth reports whether d runs along a file.
func (d Direction) IsNorthSouth() bool { return d == North || d == South }

var deltas = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

var (
	// King and Knight pseudo-attacks, ignoring blockers and own pieces.
	King   [64]bitboard.Board
	Knight [64]bitboard.Board

	// Pawn pushes (single step, ignoring blockers) and attacks, per color.
	WhitePawnPush   [64]bitboard.Board
	BlackPawnPush   [64]bitboard.Board
	WhitePawnAttack [64]bitboard.Board
	BlackPawnAttack [64]bitboard.Board

	// Ray[sq][dir] is the ray from sq to the board edge in direction dir,
	// excluding sq itself.
	Ray [64][8]bitboard.Board

	// File and Rank masks, indexed 0..7.
	FileMask [8]bitboard.Board
	RankMask [8]bitboard.Board

	// Diagonal and anti-diagonal masks, indexed the way the hyperbola
	// quintessence formula below expects.
	DiagMask     [15]bitboard.Board
	AntiDiagMask [15]bitboard.Board
)

func init() {
	for sq := 0; sq < 64; sq++ {
		f, r := bitboard.File(sq), bitboard.Rank(sq)

		King[sq] = steps(f, r, [][2]int{
			{1, 0}, {-1, 0}, {0, 1}, {0, -1},
			{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		})
		Knight[sq] = steps(f, r, [][2]int{
			{1, 2}, {2, 1}, {2, -1}, {1, -2},
			{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
		})

		WhitePawnPush[sq] = stepsIfOnBoard(f, r+1)
		BlackPawnPush[sq] = stepsIfOnBoard(f, r-1)
		WhitePawnAttack[sq] = steps(f, r, [][2]int{{1, 1}, {-1, 1}})
		BlackPawnAttack[sq] = steps(f, r, [][2]int{{1, -1}, {-1, -1}})

		for d, delta := range deltas {
			Ray[sq][d] = rayFrom(f, r, delta[0], delta[1])
		}

		FileMask[f] |= bitboard.Bit(sq)
		RankMask[r] |= bitboard.Bit(sq)
		DiagMask[f-r+7] |= bitboard.Bit(sq)
		AntiDiagMask[f+r] |= bitboard.Bit(sq)
	}
}

func steps(f, r int, offsets [][2]int) bitboard.Board {
	var m bitboard.Board
	for _, o := range offsets {
		nf, nr := f+o[0], r+o[1]
		if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			m = m.Set(bitboard.Square(nf, nr))
		}
	}
	return m
}

func stepsIfOnBoard(f, r int) bitboard.Board {
	if r < 0 || r > 7 {
		return 0
	}
	return bitboard.Bit(bitboard.Square(f, r))
}

func rayFrom(f, r, df, dr int) bitboard.Board {
	var m bitboard.Board
	for {
		f, r = f+df, r+dr
		if f < 0 || f >= 8 || r < 0 || r >= 8 {
			break
		}
		m = m.Set(bitboard.Square(f, r))
	}
	return m
}

// Cardinal returns the rook-like attack set of a slider on sq given the
// full board occupancy, using the Hyperbola Quintessence formula: flip
// the occupancy-minus-slider subtraction in both directions along each
// line and XOR, which yields exactly the squares reachable up to (and
// including) the first blocker each way.
func Cardinal(sq int, occupied bitboard.Board) bitboard.Board {
	return slide(sq, occupied, FileMask[bitboard.File(sq)]) |
		slide(sq, occupied, RankMask[bitboard.Rank(sq)])
}

// Intercardinal returns the bishop-like attack set of a slider on sq.
func Intercardinal(sq int, occupied bitboard.Board) bitboard.Board {
	f, r := bitboard.File(sq), bitboard.Rank(sq)
	return slide(sq, occupied, DiagMask[f-r+7]) |
		slide(sq, occupied, AntiDiagMask[f+r])
}

func slide(sq int, occupied, lineMask bitboard.Board) bitboard.Board {
	s := bitboard.Bit(sq)
	o := occupied & lineMask
	forward := uint64(o) - 2*uint64(s)
	reverse := bits.Reverse64(bits.Reverse64(uint64(o)) - 2*bits.Reverse64(uint64(s)))
	return bitboard.Board(forward^reverse) & lineMask
}
