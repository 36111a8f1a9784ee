// Package uci implements the engine's UCI protocol shell: a line-driven
// loop dispatching the required subset (uci, isready, position, go,
// quit) plus the supplemented commands a usable driver needs
// (ucinewgame, stop, print/d, go depth <n>).
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/engineconfig"
	"github.com/algheim/kungknuffaren/internal/movegen"
	"github.com/algheim/kungknuffaren/internal/search"
	"github.com/algheim/kungknuffaren/internal/tt"
	"github.com/algheim/kungknuffaren/internal/zobrist"
)

const (
	EngineName   = "kungknuffaren 0.1"
	EngineAuthor = "the kungknuffaren project"
)

// Engine bundles the mutable state one UCI session needs: the current
// position, the searcher and the table it's wired to, and the cooperative
// stop flag a background search polls.
type Engine struct {
	board    *board.Board
	searcher *search.Searcher
	table    *tt.Table
	cfg      engineconfig.Config

	out io.Writer
	log *log.Logger

	stopping  atomic.Bool
	searching atomic.Bool
}

// New builds an Engine at the standard starting position.
func New(cfg engineconfig.Config, out io.Writer, logger *log.Logger) *Engine {
	table := tt.New(cfg.TTSizeBytes)
	e := &Engine{
		board: board.NewStart(),
		table: table,
		cfg:   cfg,
		out:   out,
		log:   logger,
	}
	e.searcher = search.New(table)
	e.searcher.QuiescenceCap = cfg.QuiescenceCap
	e.searcher.Stop = func() bool { return e.stopping.Load() }
	return e
}

func (e *Engine) emit(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format+"\n", args...)
}

// Run reads UCI commands from r until "quit" or EOF, returning the
// process exit code (0 on quit, non-zero on an unrecoverable read error).
func (e *Engine) Run(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if e.dispatch(line) {
			return 0
		}
	}
	if err := scanner.Err(); err != nil {
		e.log.Printf("uci: input read error: %v", err)
		return 1
	}
	return 0
}

// dispatch handles one line and reports whether the session should end.
func (e *Engine) dispatch(line string) bool {
	switch {
	case line == "uci":
		e.emit("id name %s", EngineName)
		e.emit("id author %s", EngineAuthor)
		e.emit("uciok")
	case line == "isready":
		e.emit("readyok")
	case line == "ucinewgame":
		e.handleNewGame()
	case strings.HasPrefix(line, "setoption"):
		// No configurable UCI options are exposed; accepted and ignored
		// so GUIs that always send a block of setoption lines don't
		// trip the "unrecognized command" log line.
	case strings.HasPrefix(line, "position"):
		e.handlePosition(line)
	case strings.HasPrefix(line, "go"):
		e.handleGo(line)
	case line == "stop":
		e.stopping.Store(true)
	case line == "print" || line == "d":
		e.emit("%s", e.board.String())
	case line == "quit":
		return true
	default:
		e.log.Printf("uci: ignoring unrecognized command %q", line)
	}
	return false
}

func (e *Engine) handleNewGame() {
	if e.searching.Load() {
		e.log.Printf("uci: ucinewgame received mid-search, ignoring")
		return
	}
	e.table.Clear()
	e.board = board.NewStart()
}

func (e *Engine) handlePosition(line string) {
	if e.searching.Load() {
		e.log.Printf("uci: position received mid-search, ignoring")
		return
	}

	args := strings.TrimPrefix(line, "position")
	args = strings.TrimSpace(args)

	var fen, rest string
	switch {
	case args == "startpos" || strings.HasPrefix(args, "startpos "):
		fen = board.StartFEN
		rest = strings.TrimSpace(strings.TrimPrefix(args, "startpos"))
	case strings.HasPrefix(args, "fen"):
		fields := strings.Fields(strings.TrimPrefix(args, "fen"))
		if len(fields) < 6 {
			e.log.Printf("uci: malformed position command %q", line)
			return
		}
		fen = strings.Join(fields[:6], " ")
		rest = strings.Join(fields[6:], " ")
	default:
		e.log.Printf("uci: unrecognized position command %q", line)
		return
	}

	nb := board.New(zobrist.Default)
	if err := nb.SetFEN(fen); err != nil {
		e.log.Printf("uci: %v", err)
		return
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "moves") {
		for _, tok := range strings.Fields(strings.TrimPrefix(rest, "moves")) {
			m, ok := resolveMove(nb, tok)
			if !ok {
				e.log.Printf("uci: illegal move %q, ignoring remainder of position command", tok)
				break
			}
			nb.Make(m)
			nb.ChangeSide()
		}
	}

	e.board = nb
}

func (e *Engine) handleGo(line string) {
	if e.searching.Load() {
		e.log.Printf("uci: go received while already searching, ignoring")
		return
	}

	depth := e.cfg.DefaultDepth
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "depth" && i+1 < len(fields) {
			if d, err := strconv.Atoi(fields[i+1]); err == nil && d > 0 {
				depth = d
			}
		}
	}

	e.stopping.Store(false)
	e.searching.Store(true)
	b := e.board
	go func() {
		defer e.searching.Store(false)
		best := e.searcher.Search(b, depth)
		e.emit("bestmove %s", formatBestMove(best))
	}()
}

func formatBestMove(m board.Move) string {
	if m == board.NoMove {
		return "0000"
	}
	return m.UCI()
}

var promoLetter = map[board.Flag]byte{
	board.PromoQueen:  'q',
	board.PromoRook:   'r',
	board.PromoBishop: 'b',
	board.PromoKnight: 'n',
}

// resolveMove reconciles a UCI long-algebraic token (which carries no
// flag) against the generator's legal-move list by comparing endpoints
// and, for promotions, the promotion letter — per spec.md §6.
func resolveMove(b *board.Board, tok string) (board.Move, bool) {
	if len(tok) != 4 && len(tok) != 5 {
		return board.NoMove, false
	}
	from, err1 := board.ParseSquare(tok[0:2])
	to, err2 := board.ParseSquare(tok[2:4])
	if err1 != nil || err2 != nil {
		return board.NoMove, false
	}
	var promo byte
	if len(tok) == 5 {
		promo = tok[4]
	}

	candidate := board.NewMove(from, to, board.Quiet)
	for _, m := range movegen.Generate(b) {
		if !m.SameEndpoints(candidate) {
			continue
		}
		if promo != 0 {
			if !m.Flag().IsPromotion() || promoLetter[m.Flag()] != promo {
				continue
			}
		} else if m.Flag().IsPromotion() {
			continue
		}
		return m, true
	}
	return board.NoMove, false
}
