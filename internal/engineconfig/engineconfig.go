// Package engineconfig loads the engine's TOML configuration file,
// falling back to defaults on any read or parse failure — a config file
// is a convenience, never a precondition for running.
package engineconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's tunable parameters.
type Config struct {
	// DefaultDepth is the fixed search depth used when a UCI "go"
	// command carries no explicit depth (spec.md's "fixed depth
	// parameter" non-goal: no time management, only a depth limit).
	DefaultDepth int `toml:"default_depth"`
	// TTSizeBytes bounds the transposition table's backing array.
	TTSizeBytes int `toml:"tt_size_bytes"`
	// QuiescenceCap overrides the quiescence safety depth cap.
	QuiescenceCap int `toml:"quiescence_cap"`
	// LogFile, if non-empty, duplicates engine log output to this path
	// in addition to stderr.
	LogFile string `toml:"log_file"`
}

// Default returns the engine's built-in configuration.
func Default() Config {
	return Config{
		DefaultDepth:  6,
		TTSizeBytes:   64 * 1024 * 1024,
		QuiescenceCap: 10,
		LogFile:       "",
	}
}

// Load reads path as TOML and overlays it onto Default(). A missing
// file or malformed TOML is not fatal: it logs nothing itself (the
// caller decides whether to warn) and returns the default configuration
// unchanged, matching spec.md §7's "config load errors are non-fatal"
// guidance.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
