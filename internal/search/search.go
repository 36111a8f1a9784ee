// Package search implements iterative-deepening negamax alpha-beta
// search with quiescence, a transposition table, and MVV/LVA plus
// killer-move ordering.
package search

import (
	"fmt"

	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/eval"
	"github.com/algheim/kungknuffaren/internal/movegen"
	"github.com/algheim/kungknuffaren/internal/tt"
)

const (
	// Mate is the base mate score; an actual mate score is -Mate+ply (or
	// Mate-ply from the mating side's perspective after negation), so
	// that a faster mate always scores strictly better than a slower one.
	Mate = 1_000_000
	// Inf bounds the root search window; kept finite so it can be negated
	// without overflowing.
	Inf = Mate + 1000

	// MaxPly bounds the killer-move table; no realistic search reaches it.
	MaxPly = 128

	// DefaultQuiescenceCap is the safety cap on quiescence recursion
	// depth, counted separately from the main search's ply; New assigns
	// it to a Searcher's QuiescenceCap field.
	DefaultQuiescenceCap = 10
)

// MateThreshold is the score magnitude above which a result should be
// reported as a forced mate rather than a centipawn evaluation.
const MateThreshold = Mate - MaxPly

// Searcher owns the per-search state that's reused across iterative
// deepening iterations: the transposition table (which may outlive a
// single Search call, shared by the caller) and the killer-move table.
type Searcher struct {
	TT      *tt.Table
	Killers [MaxPly][2]board.Move
	Nodes   uint64

	// QuiescenceCap bounds quiescence recursion depth. New sets it to
	// DefaultQuiescenceCap; there is no fallback for a zero value, which
	// makes quiescence return the stand-pat score without searching any
	// capture.
	QuiescenceCap int

	// Stop, if non-nil, is polled at the top of every negamax node and
	// between iterative-deepening iterations (root and quiescence nodes
	// do not poll it). A production UCI driver wires this to its "stop"
	// command; left nil it never fires.
	Stop func() bool
}

// New returns a Searcher backed by table, which it does not own
// exclusively — the caller may reuse it across many searches, clearing
// it only on "ucinewgame".
func New(table *tt.Table) *Searcher {
	return &Searcher{TT: table, QuiescenceCap: DefaultQuiescenceCap}
}

func (s *Searcher) stopped() bool { return s.Stop != nil && s.Stop() }

// Search runs iterative deepening from depth 1 to depthLimit and returns
// the best move found, leaving board observably unchanged. It never
// returns board.NoMove when at least one legal move exists.
func (s *Searcher) Search(b *board.Board, depthLimit int) board.Move {
	for ply := range s.Killers {
		s.Killers[ply] = [2]board.Move{}
	}
	if s.TT != nil {
		s.TT.NewGeneration()
	}

	best := board.NoMove
	for depth := 1; depth <= depthLimit; depth++ {
		if best != board.NoMove && s.stopped() {
			break
		}
		s.Nodes = 0
		move, score := s.rootSearch(b, depth)
		if move == board.NoMove {
			break
		}
		// An iteration cut short by Stop is discarded once an earlier
		// iteration has completed.
		if best != board.NoMove && s.stopped() {
			break
		}
		best = move
		fmt.Printf("info depth %d score cp %d nodes %d pv %s\n", depth, score, s.Nodes, move.UCI())
	}
	return best
}

func (s *Searcher) rootSearch(b *board.Board, depth int) (board.Move, int) {
	s.Nodes++
	var ttMove board.Move
	if s.TT != nil {
		if entry, found := s.TT.Probe(b.Hash); found {
			ttMove = entry.BestMove
		}
	}

	moves := movegen.Generate(b)
	if len(moves) == 0 {
		return board.NoMove, 0
	}
	orderMoves(b, moves, ttMove, s.Killers[0])

	alpha, beta := -Inf, Inf
	bestMove := moves[0]
	bestScore := -Inf
	entryType := tt.UpperBound

	b.ChangeSide()
	for _, m := range moves {
		b.Make(m)
		score := -s.negamax(b, -beta, -alpha, depth-1, 1)
		b.Unmake()

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			entryType = tt.Exact
		}
	}
	b.ChangeSide()

	if s.TT != nil {
		s.TT.Store(b.Hash, entryType, bestScore, depth, bestMove)
	}
	return bestMove, bestScore
}

// negamax implements spec.md §4.8: fail-hard alpha-beta with a
// transposition table, ply-biased mate scoring, and hash-move-first
// ordering.
func (s *Searcher) negamax(b *board.Board, alpha, beta, depthRemaining, ply int) int {
	if s.stopped() {
		return 0
	}
	if depthRemaining == 0 {
		s.Nodes++
		return s.quiescence(b, alpha, beta, ply, 0)
	}

	var ttMove board.Move
	if s.TT != nil {
		if entry, found := s.TT.Probe(b.Hash); found {
			if score, cutoff := tt.ProbeCutoff(entry, true, alpha, beta, depthRemaining); cutoff {
				return score
			}
			ttMove = entry.BestMove
		}
	}

	moves := movegen.Generate(b)
	if len(moves) == 0 {
		if movegen.IsInCheck(b) {
			return -Mate + ply
		}
		return 0
	}

	killers := [2]board.Move{}
	if ply < MaxPly {
		killers = s.Killers[ply]
	}
	orderMoves(b, moves, ttMove, killers)

	entryType := tt.UpperBound
	bestMove := moves[0]

	b.ChangeSide()
	for _, m := range moves {
		capture := isCapture(b, m)
		b.Make(m)
		score := -s.negamax(b, -beta, -alpha, depthRemaining-1, ply+1)
		b.Unmake()

		if score >= beta {
			b.ChangeSide()
			if s.TT != nil {
				s.TT.Store(b.Hash, tt.LowerBound, beta, depthRemaining, m)
			}
			if !capture && ply < MaxPly {
				s.recordKiller(ply, m)
			}
			return beta
		}
		if score > alpha {
			alpha = score
			entryType = tt.Exact
			bestMove = m
		}
	}
	b.ChangeSide()

	if s.TT != nil {
		s.TT.Store(b.Hash, entryType, alpha, depthRemaining, bestMove)
	}
	return alpha
}

// quiescence implements spec.md §4.8's quiescence search: stand-pat
// unless in check (a position in check has no "do nothing" option, so
// it must search evasions instead of standing pat — otherwise a
// checkmate at the search horizon would be scored as a quiet position).
func (s *Searcher) quiescence(b *board.Board, alpha, beta, ply, qply int) int {
	s.Nodes++
	if movegen.IsInCheck(b) {
		return s.quiescenceEvasions(b, alpha, beta, ply, qply)
	}

	standPat := staticEval(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qply >= s.QuiescenceCap {
		return alpha
	}

	moves := movegen.GenerateCaptures(b)
	if len(moves) == 0 {
		return alpha
	}
	orderMoves(b, moves, board.NoMove, [2]board.Move{})

	b.ChangeSide()
	for _, m := range moves {
		b.Make(m)
		score := -s.quiescence(b, -beta, -alpha, ply+1, qply+1)
		b.Unmake()

		if score >= beta {
			b.ChangeSide()
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	b.ChangeSide()
	return alpha
}

// quiescenceEvasions handles the side-to-move-in-check case: every legal
// move is a candidate (there is no quiet "pass"), and no legal move at
// all means checkmate.
func (s *Searcher) quiescenceEvasions(b *board.Board, alpha, beta, ply, qply int) int {
	moves := movegen.Generate(b)
	if len(moves) == 0 {
		return -Mate + ply
	}
	if qply >= s.QuiescenceCap {
		return staticEval(b)
	}
	orderMoves(b, moves, board.NoMove, [2]board.Move{})

	b.ChangeSide()
	for _, m := range moves {
		b.Make(m)
		score := -s.quiescence(b, -beta, -alpha, ply+1, qply+1)
		b.Unmake()

		if score >= beta {
			b.ChangeSide()
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	b.ChangeSide()
	return alpha
}

func staticEval(b *board.Board) int {
	score := eval.Evaluate(b)
	if b.SideToMove == board.Black {
		return -score
	}
	return score
}

func (s *Searcher) recordKiller(ply int, m board.Move) {
	if s.Killers[ply][0] == m {
		return
	}
	s.Killers[ply][1] = s.Killers[ply][0]
	s.Killers[ply][0] = m
}

func isCapture(b *board.Board, m board.Move) bool {
	return m.Flag() == board.EnPassantCapture || !b.PieceAt(m.To()).IsEmpty()
}
