// Command kungknuffaren is the engine's process entrypoint: by default it
// speaks UCI over stdin/stdout; -cli switches to an interactive terminal
// play session.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/algheim/kungknuffaren/internal/engineconfig"
	"github.com/algheim/kungknuffaren/internal/uci"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML engine configuration file")
	cli := flag.Bool("cli", false, "play interactively from the terminal instead of speaking UCI")
	flag.Parse()

	logger := log.New(os.Stderr, "kungknuffaren: ", log.LstdFlags)

	cfg, err := engineconfig.Load(*configPath)
	if err != nil {
		logger.Printf("config: failed to load %q, using defaults: %v", *configPath, err)
	}

	logger = withLogFile(logger, cfg.LogFile)

	if *cli {
		os.Exit(uci.RunCLI(os.Stdin, os.Stdout, logger, cfg))
	}

	engine := uci.New(cfg, os.Stdout, logger)
	os.Exit(engine.Run(os.Stdin))
}

// withLogFile duplicates logger's output to path in addition to its
// existing writer, when path is non-empty. A file that can't be opened
// is logged and otherwise ignored — a log file is a convenience, never
// a precondition for running.
func withLogFile(logger *log.Logger, path string) *log.Logger {
	if path == "" {
		return logger
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Printf("config: failed to open log file %q, logging to stderr only: %v", path, err)
		return logger
	}
	return log.New(io.MultiWriter(os.Stderr, f), logger.Prefix(), logger.Flags())
}
