package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/loamdb/loam/internal/catalog"
	"github.com/loamdb/loam/internal/engine"
	"github.com/loamdb/loam/internal/logging"
	"github.com/loamdb/loam/internal/network"
	"github.com/loamdb/loam/internal/repl"
	"github.com/loamdb/loam/internal/storage"
)

var (
	dataDir  string
	seqURL   string
	logLevel string
	port     int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loam",
		Short: "loam is an embedded relational data engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory holding table snapshots")
	root.PersistentFlags().StringVar(&seqURL, "seq-url", "", "Seq ingestion URL for structured logs (optional)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the TCP query server",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()
			return network.Start(port, eng)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 4444, "port to listen on")

	execCmd := &cobra.Command{
		Use:   "exec [statement]",
		Short: "Execute a single statement and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := eng.Execute(args[0])
			if err != nil {
				return err
			}
			repl.PrintResult(os.Stdout, result)
			return nil
		},
	}

	root.AddCommand(replCmd, serveCmd, execCmd)
	return root
}

func runRepl() error {
	eng, cat, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()
	repl.Start(eng, cat)
	return nil
}

func setup() (*engine.Engine, *catalog.Catalog, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	_, cleanup := logging.Setup(seqURL, level)

	store, err := storage.NewStore(dataDir)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	cat := catalog.New()
	if err := store.Load(cat); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	eng := engine.New(cat)
	eng.OnMutation(func() {
		if err := store.Save(cat); err != nil {
			slog.Error("failed to save database", slog.Any("error", err))
		}
	})
	return eng, cat, cleanup, nil
}
