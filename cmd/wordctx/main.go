// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the next-word prediction server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordCtx predicts the word that follows the one just typed. The previous word
is resolved against an in-memory trie dictionary, its bigram list is located,
and the list is returned best first. Auto-capitalized words ("The") fall back
to their lowercase entry ("the") when they have no list of their own.

# Usage

Start the server with default settings:

	wordctx

Preload a dictionary snapshot and enable debug logs:

	wordctx -snapshot words.msgpack -d

Run in CLI mode for interactive testing:

	wordctx -c -limit 5

# Configuration

Runtime configuration is read from a TOML file, created with defaults on
first run:

	[server]
	max_limit = 64
	default_limit = 10
	cache_size = 2048

	[ngram]
	try_lower_case = true

	[dict]
	snapshot = ""
	max_bigrams_per_word = 1024

# IPC Protocol

The server speaks msgpack over stdin/stdout; see package server for the
message layout.

	{"id": "req1", "action": "predict", "w": "The", "l": 3}
	{"id": "req1", "s": [{"w": "end", "p": 90, "r": 1}], "c": 1, "t": 8}

# Command Line Flags

	-config string
	    Path to a TOML config file
	-snapshot string
	    Dictionary snapshot to preload (overrides [dict] snapshot)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of predictions to print in CLI mode
	-no-filter
	    Disable input filtering in CLI mode
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordctx/internal/cli"
	"github.com/bastiangx/wordctx/pkg/config"
	"github.com/bastiangx/wordctx/pkg/dictionary"
	"github.com/bastiangx/wordctx/pkg/server"
	"github.com/bastiangx/wordctx/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordctx"
	gh      = "https://github.com/bastiangx/wordctx"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and predictor, then hands over to the server or the CLI.
func main() {
	sigHandler()
	log.SetOutput(os.Stderr)

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a TOML config file")
	snapshotPath := flag.String("snapshot", "", "Dictionary snapshot to preload")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of predictions to return in CLI mode (0 uses config)")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	dict := dictionary.New(appConfig.Dict.MaxBigramsPerWord)
	snapshot := appConfig.Dict.Snapshot
	if *snapshotPath != "" {
		snapshot = *snapshotPath
	}
	if snapshot != "" {
		if err := dict.LoadFile(snapshot); err != nil {
			log.Fatalf("Failed to load dictionary snapshot: %v", err)
		}
		stats := dict.Stats()
		log.Debugf("Dictionary ready: words=[%d], bigrams=[%d]", stats.Words, stats.Bigrams)
	} else {
		log.Warn("No snapshot specified, running with empty dict...")
	}

	predictor := suggest.NewCachedPredictor(dict, appConfig.Server.CacheSize)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		cliLimit := appConfig.CLI.DefaultLimit
		if *limit > 0 {
			cliLimit = *limit
		}
		inputHandler := cli.NewInputHandler(predictor, cliLimit, appConfig.NGram.TryLowerCase,
			*noFilter || appConfig.CLI.NoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(predictor, appConfig)
	showStartupInfo(snapshot)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordCtx ] Predicts the next word from the previous one")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic init info on stderr; stdout belongs to IPC.
func showStartupInfo(snapshot string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if snapshot != "" {
		log.Infof("snapshot: ( %s )", snapshot)
	}
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
