package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/algheim/kungknuffaren/internal/board"
	"github.com/algheim/kungknuffaren/internal/engineconfig"
	"github.com/algheim/kungknuffaren/internal/movegen"
	"github.com/algheim/kungknuffaren/internal/search"
	"github.com/algheim/kungknuffaren/internal/tt"
	"github.com/algheim/kungknuffaren/internal/zobrist"
)

// RunCLI drives a simple terminal play session: the user supplies a
// starting FEN (or "startpos") and a side, then alternates moves with
// the engine until "quit", end of input at the move prompt, or
// checkmate/stalemate.
func RunCLI(r io.Reader, w io.Writer, logger *log.Logger, cfg engineconfig.Config) int {
	reader := bufio.NewReader(r)

	fmt.Fprint(w, "Enter a FEN, or \"startpos\" for the starting position: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)

	b := board.New(zobrist.Default)
	if line == "" || line == "startpos" {
		if err := b.SetFEN(board.StartFEN); err != nil {
			logger.Printf("cli: %v", err)
			return 1
		}
	} else if err := b.SetFEN(line); err != nil {
		fmt.Fprintf(w, "malformed FEN: %v\n", err)
		return 1
	}

	fmt.Fprint(w, "Play as white or black? ")
	line, _ = reader.ReadString('\n')
	humanIsWhite := strings.TrimSpace(line) != "black"
	humanToMove := humanIsWhite == (b.SideToMove == board.White)

	table := tt.New(cfg.TTSizeBytes)
	searcher := search.New(table)
	searcher.QuiescenceCap = cfg.QuiescenceCap

	for {
		fmt.Fprint(w, b.String())

		legal := movegen.Generate(b)
		if len(legal) == 0 {
			if movegen.IsInCheck(b) {
				fmt.Fprintln(w, "checkmate")
			} else {
				fmt.Fprintln(w, "stalemate")
			}
			return 0
		}

		if humanToMove {
			fmt.Fprint(w, "your move (UCI notation, or \"quit\"): ")
			var err error
			line, err = reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "quit" || (err != nil && line == "") {
				return 0
			}
			m, ok := resolveMove(b, line)
			if !ok {
				fmt.Fprintln(w, "illegal or unrecognized move, try again")
				continue
			}
			b.Make(m)
		} else {
			best := searcher.Search(b, cfg.DefaultDepth)
			fmt.Fprintf(w, "engine plays %s\n", best.UCI())
			b.Make(best)
		}
		b.ChangeSide()
		humanToMove = !humanToMove
	}
}
