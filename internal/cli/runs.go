package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/internal/sqlite"
)

func newRunsCmd(a *app) *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved series",
	}
	runs.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *sqlite.Backend) error {
				list, err := store.ListRuns()
				if err != nil {
					return classify(err)
				}
				if list == nil {
					list = []sqlite.Run{}
				}
				return a.write(cmd, list)
			})
		},
	})
	runs.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a saved series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *sqlite.Backend) error {
				s, err := store.GetSeries(args[0])
				if err != nil {
					return classify(err)
				}
				return a.write(cmd, seriesResult{RunID: args[0], Series: s, Bounds: s.Bounds()})
			})
		},
	})
	runs.AddCommand(&cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove a saved series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *sqlite.Backend) error {
				if err := store.DeleteRun(args[0]); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})
	return runs
}

func (a *app) withStore(fn func(*sqlite.Backend) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Detach()
	return fn(store)
}
