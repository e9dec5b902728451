// plume - a terminal chat client for a local assistant backend.
//
// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/cli"
	"github.com/plumechat/plume-tui/internal/config"
	"github.com/plumechat/plume-tui/internal/diag"
	"github.com/plumechat/plume-tui/internal/feedback"
	"github.com/plumechat/plume-tui/internal/storage"
	"github.com/plumechat/plume-tui/internal/store"
	"github.com/plumechat/plume-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := cli.NewArgParser(os.Args[1:])

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: invalid configuration:", err)
		os.Exit(2)
	}
	config.SetGlobal(cfg)

	logger, closeLog, err := diag.Open(cfg.DataDir(), logLevel(args))
	if err != nil {
		// The discard logger keeps the rest of the program oblivious.
		fmt.Fprintln(os.Stderr, "warning: diagnostics disabled:", err)
	}
	defer closeLog()

	switch args.Subcommand() {
	case "ask":
		os.Exit(cli.HandleAsk(args, cfg, logger))
	case "chat":
		os.Exit(cli.HandleChat(cfg, logger))
	case "version":
		fmt.Printf("plume %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	case "help":
		printUsage()
	case "":
		os.Exit(runTUI(args, cfg, logger))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args.Subcommand())
		printUsage()
		os.Exit(2)
	}
}

// loadConfig loads the config file and applies CLI overrides. Flags win
// over the file, which wins over defaults.
func loadConfig(args *cli.ArgParser) (*config.Config, error) {
	path := args.FlagOrDefault("config", config.DefaultPath())

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if server := args.Flag("server"); server != "" {
		cfg.Server.URL = server
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func logLevel(args *cli.ArgParser) slog.Level {
	if args.BoolFlag("verbose") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// runTUI assembles the session store, backend client, and feedback
// journal, then hands control to bubbletea on the alternate screen.
func runTUI(args *cli.ArgParser, cfg *config.Config, logger *slog.Logger) int {
	if !cli.IsInteractive() {
		fmt.Fprintln(os.Stderr, "plume needs an interactive terminal; use 'plume ask' for piped input")
		return 2
	}

	st, err := store.Open(storage.NewStateFile(cfg.DataDir()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: could not open session:", err)
		return 1
	}

	// The feedback journal is best-effort. A broken database must not
	// keep the chat client from starting.
	journal, err := feedback.Open(cfg.DataDir())
	if err != nil {
		logger.Warn("feedback journal unavailable", "err", err)
		journal = nil
	}
	if journal != nil {
		defer journal.Close()
	}

	client := api.NewClient(cfg.Server.URL, logger).
		WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	m := chat.New(st, client, journal, cfg, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Config edits land in the running UI as a message, never as a
	// direct mutation from the watcher goroutine.
	configPath := args.FlagOrDefault("config", config.DefaultPath())
	watcher, err := config.NewWatcher(configPath, logger, func(next *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Cfg: next})
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "err", err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Print(`plume - terminal chat client

Usage:
  plume                 launch the TUI
  plume ask <question>  one-shot question, prints the reply
  plume chat            line-based REPL sharing the TUI session
  plume version         print version information
  plume help            print this help

Flags:
  --config <path>   config file (default ~/.plume/config.toml)
  --server <url>    backend URL override
  --verbose         debug diagnostics in plume.log
`)
}
