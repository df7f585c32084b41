/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command slotctl inspects and edits slot stores from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/slotstore"
	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/datastore/bolt"
	"github.com/suparena/slotstore/datastore/ddb"
	"github.com/suparena/slotstore/datastore/sqlite"
	"github.com/suparena/slotstore/observability"
)

// options are the flags shared by every command
type options struct {
	backend string
	path    string
	table   string
	typ     string
	verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "slotctl",
		Short:        "Inspect and edit typed slot stores",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "bolt", "Store backend: memory, bolt, sqlite or ddb")
	cmd.PersistentFlags().StringVar(&opts.path, "path", "slots.db", "Database file for the bolt and sqlite backends")
	cmd.PersistentFlags().StringVar(&opts.table, "table", "", "Bucket (bolt), table (sqlite) or DynamoDB table; backend default when empty")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newGetCommand(opts),
		newSetCommand(opts),
		newRemoveCommand(opts),
		newListCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (o *options) observer(logger *zap.Logger) slotstore.Observer {
	return observability.NewZapObserver(logger)
}

// openStore opens the configured backend. The returned func releases it.
func (o *options) openStore(ctx context.Context, logger *zap.Logger) (datastore.Store, func() error, error) {
	switch o.backend {
	case "memory":
		return slotstore.Standard(), func() error { return nil }, nil

	case "bolt":
		store := bolt.NewStore(bolt.Config{Path: o.path, Bucket: o.table})
		store.WithLogger(logger)
		if err := store.Open(ctx); err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case "sqlite":
		store, err := sqlite.Open(ctx, sqlite.Config{Path: o.path, Table: o.table}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case "ddb":
		cfg := ddb.ConfigFromEnv()
		if o.table != "" {
			cfg.Table = o.table
		}
		store, err := ddb.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.WithLogger(logger), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", o.backend)
}

// withStore runs fn against an open store and closes it afterwards.
func (o *options) withStore(cmd *cobra.Command, fn func(store datastore.Store, obs slotstore.Observer) error) error {
	logger := o.logger()
	defer logger.Sync()

	store, closeStore, err := o.openStore(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(store, o.observer(logger))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := slotstore.GetVersionInfo()
			cmd.Printf("slotctl version %s\n", info.Version)
			cmd.Printf("Git commit: %s\n", info.GitCommit)
			cmd.Printf("Build date: %s\n", info.BuildDate)
			cmd.Printf("Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}
