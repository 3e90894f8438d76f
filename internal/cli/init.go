package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/internal/config"
	"github.com/mesh-intelligence/collatz/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the series store",
		Long: "Write a default config.yaml if none exists, then create the data\n" +
			"directory and its series store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := paths.ResolveDataDir(a.dataDir, a.cfg.DataDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}

			created, err := config.WriteDefault(a.configDir, dataDir)
			if err != nil {
				return sysError(err)
			}
			if created {
				a.log.Info("wrote config", slog.String("config_dir", a.configDir))
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return sysError(fmt.Errorf("close store: %w", err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "collatz initialized\nconfig: %s\ndata: %s\n", a.configDir, dataDir)
			return nil
		},
	}
}
