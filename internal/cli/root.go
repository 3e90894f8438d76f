// Package cli implements the collatz command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/internal/analysis"
	"github.com/mesh-intelligence/collatz/internal/codec"
	"github.com/mesh-intelligence/collatz/internal/config"
	"github.com/mesh-intelligence/collatz/internal/paths"
	"github.com/mesh-intelligence/collatz/internal/sqlite"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries the global flags and the state every subcommand shares.
type app struct {
	configDir string
	dataDir   string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd creates the top-level "collatz" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	def := config.Default()

	root := &cobra.Command{
		Use:   "collatz",
		Short: "Explore Collatz trajectory trees",
		Long: "collatz builds the merged tree of Collatz trajectories rooted at 1 for\n" +
			"four variants of the map and answers queries over it.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.String("variant", def.Variant, "map variant: full, short, odd or compact")
	pf.Int("up-batch", def.UpBatch, "nodes expanded per upward growth round")
	pf.String("format", def.Format, "output format: json or cbor")
	pf.String("log-level", def.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newStepCmd(a),
		newOrbitCmd(a),
		newDepthCmd(a),
		newAncestorCmd(a),
		newTreeCmd(a),
		newSeriesCmd(a),
		newRunsCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = dir

	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		return userError(err)
	}
	level, _ := cfg.Level()
	a.cfg = cfg
	a.log = newLogger(level, cfg.LogFormat, cmd.ErrOrStderr())
	a.log.Debug("loaded config",
		slog.String("config_dir", dir),
		slog.String("variant", cfg.Variant),
		slog.Uint64("max", cfg.Max))
	return nil
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error to a process exit code. Errors that carry no code
// are usage errors reported by cobra itself.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// classify marks errors caused by bad input as user errors and everything
// else as system errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range []error{
		collatz.ErrInvalidDomain,
		collatz.ErrOverflow,
		collatz.ErrUnknownVariant,
		collatz.ErrNotGenerated,
		codec.ErrUnknownFormat,
		analysis.ErrUnknownKind,
		sqlite.ErrRunNotFound,
	} {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}
