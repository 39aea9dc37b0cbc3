// Copyright 2025 The DialServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the smart dial server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

DialServe matches what a user types on a phone keypad against a contact list.
Every letter of a name stands for its keypad digit, so "2255" finds
"Alice Baker" (AL on 25, B on 2) as well as any number containing 2255. It
runs as a MessagePack IPC server for dialer front ends, or as a CLI for
testing and debugging.

# Usage

Start the server with the default config and contact file:

	dialserve

Read contacts from Redis and enable debug mode:

	dialserve -source redis -d

Run in CLI mode for interactive testing:

	dialserve -c -contacts ./contacts.toml

# Configuration

Runtime configuration lives in dialserve.toml inside the user config dir. It
is created with defaults when missing, and a file with bad values still
loads every value that parses:

	[server]
	max_entries = 3
	max_query = 64

	[index]
	nanp = true
	latinize = true

	[source]
	kind = "file"
	path = "contacts.toml"

	[ranking]
	recent_window_days = [3, 7, 30]
	prefer_starred = true

# Contact Sources

Contacts come from one of the registered sources:

	file           TOML or msgpack contact list, ranked on every load
	memory         empty in-process list, mostly for tests
	redis          sorted set of contacts kept in rank order
	elasticsearch  index of contact documents with a rank field

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package server
for message layouts.

	{"id": "q1", "q": "2255"}
	{"id": "q1", "s": [{"n": "Alice Baker", "p": "555-111-2222", "r": 1}], "c": 1, "t": 180}

# Command Line Flags

	-config string
	    Path to a config file (default: user config dir)
	-source string
	    Contact source kind, overrides [source] kind
	-contacts string
	    Contact file for the file source, overrides [source] path
	-nanp
	    Tolerate missing trunk and area codes when matching numbers
	-limit int
	    Entries listed per query in CLI mode
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-rebuild-config
	    Overwrite the default config file with defaults and exit
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/dialserve/internal/cli"
	"github.com/bastiangx/dialserve/internal/logger"
	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/bastiangx/dialserve/pkg/config"
	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/bastiangx/dialserve/pkg/server"
	"github.com/bastiangx/dialserve/pkg/smartdial"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	gh      = "https://github.com/bastiangx/dialserve"
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

// main wires config, the contact source, the index and either the server or
// the CLI. It holds no matching logic.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config file")
	sourceKind := flag.String("source", "", "Contact source: "+fmt.Sprint(contacts.Registered()))
	contactsPath := flag.String("contacts", "", "Contact file for the file source")
	nanp := flag.Bool("nanp", defaultConfig.Index.NANP, "Tolerate missing trunk and area codes when matching numbers")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of entries to list per query in CLI mode")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

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

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config rebuilt", "path", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	if pathResolver, err := utils.NewPathResolver(); err == nil {
		log.Debug("Runtime", "info", pathResolver.GetRuntimeInfo())
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	// flags given explicitly win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source.Kind = *sourceKind
		case "nanp":
			cfg.Index.NANP = *nanp
		case "limit":
			cfg.CLI.DefaultLimit = *limit
		}
	})

	src, err := openSource(cfg, *contactsPath)
	if err != nil {
		log.Fatalf("Failed to open contact source: %v", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warnf("Closing contact source: %v", err)
		}
	}()

	ctx := context.Background()
	cache := smartdial.NewCache(src, cfg.CacheOptions())
	searcher, err := smartdial.NewSearcher(cache, cfg.SearchOptions())
	if err != nil {
		log.Fatalf("Failed to init searcher: %v", err)
	}
	// build in the background so the first query rarely waits
	cache.CacheIfNeeded(ctx, false)

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minQuery", cfg.Server.MinQuery,
			"maxQuery", cfg.QueryLimit(),
			"limit", cfg.CLI.DefaultLimit)

		inputHandler := cli.NewInputHandler(searcher, cli.Options{
			MinQuery: cfg.Server.MinQuery,
			MaxQuery: cfg.QueryLimit(),
			Limit:    cfg.CLI.DefaultLimit,
			Color:    cfg.CLI.Color,
		})
		if err := inputHandler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(searcher, server.Options{
		MinQuery: cfg.Server.MinQuery,
		MaxQuery: cfg.QueryLimit(),
	})
	showStartupInfo(cfg.Source.Kind)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openSource opens the configured source. A relative contact file is looked
// up next to the working dir, the executable and in the config dir.
func openSource(cfg *config.Config, contactsPath string) (contacts.Source, error) {
	name, params, err := cfg.SourceParams(contactsPath)
	if err != nil {
		return nil, err
	}
	if fc, ok := params.(contacts.FileConfig); ok {
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Warnf("Failed to init path resolver: %v", err)
		} else {
			fc.Path = pathResolver.GetContactsPath(fc.Path)
		}
		log.Debugf("Using contact file at: %s", fc.Path)
		params = fc
	}
	return contacts.Open(name, params)
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)
	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ DialServe ] Finds contacts as fast as you dial them!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(source string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" DialServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("source: ( %s )", source)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
