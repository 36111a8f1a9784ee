package tt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algheim/kungknuffaren/internal/board"
)

func TestNewRoundsCapacityToPowerOfTwo(t *testing.T) {
	table := New(48 * 100) // ~100 entries worth
	require.Equal(t, 0, len(table.entries)&(len(table.entries)-1), "capacity must be a power of two")
	require.GreaterOrEqual(t, len(table.entries), 2)
}

func TestNewEnforcesMinimumCapacity(t *testing.T) {
	table := New(1)
	require.Equal(t, 2, len(table.entries))
}

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := New(1 << 20)
	move := board.NewMove(12, 28, board.DoublePawnPush)
	table.Store(0xABCDEF, Exact, 150, 4, move)

	entry, found := table.Probe(0xABCDEF)
	require.True(t, found)
	require.Equal(t, Exact, entry.Type)
	require.Equal(t, 150, entry.Score)
	require.Equal(t, 4, entry.Depth)
	require.Equal(t, move, entry.BestMove)
}

func TestProbeMissOnKeyCollisionAtSameIndex(t *testing.T) {
	table := New(2 * 48) // capacity exactly 2, so index is key&1
	table.Store(0, Exact, 10, 3, board.NoMove)
	_, found := table.Probe(2) // shares index 0 but a different key
	require.False(t, found)
}

func TestStoreRespectsDepthPreferringReplacement(t *testing.T) {
	table := New(1 << 20)
	table.Store(42, Exact, 100, 10, board.NoMove)
	table.Store(42, Exact, 999, 3, board.NoMove) // shallower, must not overwrite

	entry, found := table.Probe(42)
	require.True(t, found)
	require.Equal(t, 100, entry.Score)
	require.Equal(t, 10, entry.Depth)
}

func TestStoreOverwritesWithGreaterOrEqualDepth(t *testing.T) {
	table := New(1 << 20)
	table.Store(42, Exact, 100, 3, board.NoMove)
	table.Store(42, LowerBound, 55, 3, board.NoMove)

	entry, found := table.Probe(42)
	require.True(t, found)
	require.Equal(t, 55, entry.Score)
	require.Equal(t, LowerBound, entry.Type)
}

func TestClearDeactivatesAllEntries(t *testing.T) {
	table := New(1 << 20)
	table.Store(7, Exact, 1, 1, board.NoMove)
	table.Clear()
	_, found := table.Probe(7)
	require.False(t, found)
}

func TestProbeCutoffExactAlwaysCuts(t *testing.T) {
	e := Entry{Type: Exact, Score: 30, Depth: 5}
	score, cutoff := ProbeCutoff(e, true, -100, 100, 3)
	require.True(t, cutoff)
	require.Equal(t, 30, score)
}

func TestProbeCutoffShallowerEntryNeverCuts(t *testing.T) {
	e := Entry{Type: Exact, Score: 30, Depth: 2}
	_, cutoff := ProbeCutoff(e, true, -100, 100, 5)
	require.False(t, cutoff)
}

func TestProbeCutoffUpperBoundOnlyCutsBelowAlpha(t *testing.T) {
	e := Entry{Type: UpperBound, Score: -10, Depth: 5}
	score, cutoff := ProbeCutoff(e, true, 0, 100, 3)
	require.True(t, cutoff)
	require.Equal(t, 0, score)

	e2 := Entry{Type: UpperBound, Score: 50, Depth: 5}
	_, cutoff2 := ProbeCutoff(e2, true, 0, 100, 3)
	require.False(t, cutoff2)
}

func TestProbeCutoffLowerBoundOnlyCutsAboveBeta(t *testing.T) {
	e := Entry{Type: LowerBound, Score: 120, Depth: 5}
	score, cutoff := ProbeCutoff(e, true, -100, 100, 3)
	require.True(t, cutoff)
	require.Equal(t, 100, score)

	e2 := Entry{Type: LowerBound, Score: 50, Depth: 5}
	_, cutoff2 := ProbeCutoff(e2, true, -100, 100, 3)
	require.False(t, cutoff2)
}

func TestProbeCutoffNotFoundNeverCuts(t *testing.T) {
	_, cutoff := ProbeCutoff(Entry{}, false, -100, 100, 3)
	require.False(t, cutoff)
}
