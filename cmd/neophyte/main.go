// Package main is the entry point for the neophyte client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/illfygli/neophyte/internal/config"
	"github.com/illfygli/neophyte/internal/logging"
	"github.com/illfygli/neophyte/internal/nvim"
	"github.com/illfygli/neophyte/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.command != "" {
		cfg.Editor.Command = opts.command
	}

	log, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	session, err := nvim.Spawn(context.Background(), nvim.Config{
		Command: cfg.Editor.Command,
		Args:    append(cfg.Editor.Args, opts.files...),
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	// Live reload keeps the log level adjustable while the screen is
	// occupied. A missing config directory just disables it.
	watcher, err := config.Watch(cfgPath, func(c config.Config) {
		if err := logging.SetLevel(c.Log.Level); err != nil {
			log.Warn().Err(err).Msg("ignoring reloaded log level")
		}
	}, log)
	if err != nil {
		log.Debug().Err(err).Msg("config watching disabled")
	} else {
		defer watcher.Close()
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		session.Close()
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}

	front := tui.New(screen, session, tui.Options{Mouse: cfg.UI.Mouse}, log)
	if err := front.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

type options struct {
	configPath string
	logLevel   string
	command    string
	files      []string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flag.StringVar(&opts.command, "cmd", "", "Editor binary to embed (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Neophyte - terminal client for embedded Neovim\n\n")
		fmt.Fprintf(os.Stderr, "Usage: neophyte [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  neophyte                    Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  neophyte file.go            Open a file\n")
		fmt.Fprintf(os.Stderr, "  neophyte -cmd nvim-nightly  Embed a specific binary\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Neophyte %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Remaining arguments are files to open
	opts.files = flag.Args()

	return opts
}
