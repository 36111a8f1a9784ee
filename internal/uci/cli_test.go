package uci

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algheim/kungknuffaren/internal/engineconfig"
)

func TestRunCLIReportsImmediateCheckmate(t *testing.T) {
	out := new(bytes.Buffer)
	logger := log.New(new(bytes.Buffer), "", 0)
	cfg := engineconfig.Default()
	cfg.DefaultDepth = 1

	// A position already checkmated for the side to move: the session
	// should report it and exit without prompting for a move.
	in := strings.NewReader("k7/8/8/8/8/8/5PPP/q6K w - - 0 1\nwhite\n")
	code := RunCLI(in, out, logger, cfg)

	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "checkmate")
}

func TestRunCLIQuitExitsCleanly(t *testing.T) {
	out := new(bytes.Buffer)
	logger := log.New(new(bytes.Buffer), "", 0)
	cfg := engineconfig.Default()

	in := strings.NewReader("startpos\nwhite\nquit\n")
	code := RunCLI(in, out, logger, cfg)
	require.Equal(t, 0, code)
}
