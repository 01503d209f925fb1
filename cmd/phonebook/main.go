package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Wadeahh3/phonebook/internal/config"
	"github.com/Wadeahh3/phonebook/internal/history"
	"github.com/Wadeahh3/phonebook/internal/phonebook"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "phonebook",
	Short:   "Manage a personal phone book from the terminal",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(batchDeleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// session bundles what every command needs: config, logger, the loaded
// book and the history journal. Close saves nothing; commands decide
// when to save.
type session struct {
	cfg  config.Config
	log  *slog.Logger
	book *phonebook.Book
	hist *history.Store

	logFile io.Closer
}

// newSession loads config, sets up logging, opens the journal and
// loads the contacts file.
func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s.log = logger
	s.logFile = closer

	hist, err := history.Open(cfg.Storage.DataDir)
	if err != nil {
		// The journal is a side feature; the book works without it.
		logger.Warn("opening history store", "error", err)
	} else {
		s.hist = hist
	}

	s.book = phonebook.New(cfg.ContactsPath(), logger)
	if err := s.book.LoadFromFile(); err != nil {
		s.Close()
		return nil, err
	}
	if s.hist != nil {
		s.book.AttachJournal(s.hist)
	}

	return s, nil
}

func (s *session) Close() {
	if s.hist != nil {
		s.hist.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// newLogger builds the slog logger per config. A configured log file
// gets created inside the data dir; empty means stderr.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	if path := cfg.LogPath(); path != "" {
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}
