package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/internal/codec"
	"github.com/mesh-intelligence/collatz/internal/paths"
	"github.com/mesh-intelligence/collatz/internal/sqlite"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// parseValue parses a positive integer argument.
func parseValue(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, userError(fmt.Errorf("invalid value %q: %w", s, err))
	}
	return n, nil
}

func parseValues(args []string) ([]uint64, error) {
	values := make([]uint64, len(args))
	for i, s := range args {
		n, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		values[i] = n
	}
	return values, nil
}

// variant returns the configured variant. The configuration was validated
// at load time.
func (a *app) variant() collatz.Variant {
	v, _ := collatz.ParseVariant(a.cfg.Variant)
	return v
}

func (a *app) graphOptions() []collatz.Option {
	return []collatz.Option{collatz.WithUpBatch(a.cfg.UpBatch), collatz.WithLogger(a.log)}
}

func (a *app) newGraph() (*collatz.Graph, error) {
	return collatz.New(a.variant(), a.graphOptions()...)
}

// write encodes v to the command's output in the configured format.
func (a *app) write(cmd *cobra.Command, v any) error {
	f, _ := codec.ParseFormat(a.cfg.Format)
	if err := codec.Encode(cmd.OutOrStdout(), f, v); err != nil {
		return sysError(fmt.Errorf("write output: %w", err))
	}
	return nil
}

// openStore attaches the series store in the resolved data directory.
// The caller must Detach it.
func (a *app) openStore() (*sqlite.Backend, error) {
	dir, err := paths.ResolveDataDir(a.dataDir, a.cfg.DataDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	store := sqlite.NewBackend(a.log)
	if err := store.Attach(dir); err != nil {
		return nil, sysError(fmt.Errorf("open store: %w", err))
	}
	return store, nil
}
