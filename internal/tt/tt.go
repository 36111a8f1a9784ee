// Package tt implements the engine's transposition table: a single
// contiguous, direct-mapped, power-of-two array of entries indexed by
// the low bits of the Zobrist key, with the full key stored alongside
// to disambiguate collisions.
package tt

import (
	"math/bits"

	"github.com/algheim/kungknuffaren/internal/board"
)

// EntryType records what kind of bound a stored score represents.
type EntryType uint8

const (
	Exact EntryType = iota
	LowerBound
	UpperBound
)

// Entry is one transposition table slot.
type Entry struct {
	isActive bool
	key      uint64
	Type     EntryType
	Score    int
	Depth    int
	Age      uint32
	BestMove board.Move
}

// Table is a direct-mapped transposition table. The zero value is not
// usable; construct one with New.
type Table struct {
	entries []Entry
	mask    uint64
	age     uint32
}

// New returns a table sized to the largest power of two whose entries
// fit within sizeBytes.
func New(sizeBytes int) *Table {
	const entrySize = 48 // approximate Entry footprint, conservative
	capacity := sizeBytes / entrySize
	if capacity < 2 {
		capacity = 2
	}
	pow2 := 1 << (bits.Len(uint(capacity)) - 1)
	return &Table{
		entries: make([]Entry, pow2),
		mask:    uint64(pow2 - 1),
	}
}

// NewGeneration increments the table's age counter; the searcher calls
// this once per root search so entries can be (optionally) preferred
// when they come from the current root.
func (t *Table) NewGeneration() { t.age++ }

func (t *Table) index(key uint64) uint64 { return key & t.mask }

// Probe returns the resident entry for key and true iff it is active
// and its full key matches — a direct-mapped table has no chaining, so
// a miss silently means "overwritten by a different position that
// happened to share this index".
func (t *Table) Probe(key uint64) (Entry, bool) {
	e := t.entries[t.index(key)]
	if !e.isActive || e.key != key {
		return Entry{}, false
	}
	return e, true
}

// Store records an entry for key, always replacing the resident entry
// unless that entry is active and has strictly greater depth than the
// candidate, whichever position it belongs to. Age is recorded on every
// entry but plays no part in replacement.
func (t *Table) Store(key uint64, typ EntryType, score, depth int, best board.Move) {
	idx := t.index(key)
	resident := t.entries[idx]
	if resident.isActive && resident.Depth > depth {
		return
	}
	t.entries[idx] = Entry{
		isActive: true,
		key:      key,
		Type:     typ,
		Score:    score,
		Depth:    depth,
		Age:      t.age,
		BestMove: best,
	}
}

// Clear deactivates every entry, used by "ucinewgame" so a new game
// doesn't inherit stale scores from a previous position tree.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
}

// ProbeCutoff applies spec.md §4.7's cutoff rules and reports whether the
// entry alone resolves this node, plus the score to return if so.
func ProbeCutoff(e Entry, found bool, alpha, beta, depth int) (score int, cutoff bool) {
	if !found || e.Depth < depth {
		return 0, false
	}
	switch e.Type {
	case Exact:
		return e.Score, true
	case UpperBound:
		if e.Score <= alpha {
			return alpha, true
		}
	case LowerBound:
		if e.Score >= beta {
			return beta, true
		}
	}
	return 0, false
}
