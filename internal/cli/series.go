package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/internal/analysis"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

type seriesResult struct {
	RunID string `json:"run_id,omitempty"`
	*analysis.Series
	Bounds analysis.Bounds `json:"bounds"`
}

func kindNames() string {
	names := make([]string, len(analysis.Kinds))
	for i, k := range analysis.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func newSeriesCmd(a *app) *cobra.Command {
	var (
		all  bool
		save bool
	)
	cmd := &cobra.Command{
		Use:   "series <" + kindNames() + ">",
		Short: "Compute a plot series over every value up to --max",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := analysis.ParseKind(args[0])
			if err != nil {
				return userError(err)
			}
			variants := []collatz.Variant{a.variant()}
			if all {
				variants = collatz.Variants()
			}

			ws := analysis.NewWorkspace(a.log, a.graphOptions()...)
			computed, err := ws.ComputeAll(cmd.Context(), kind, a.cfg.Max, variants...)
			if err != nil {
				return classify(err)
			}

			results := make([]seriesResult, len(computed))
			for i, s := range computed {
				results[i] = seriesResult{Series: s, Bounds: s.Bounds()}
			}
			if save {
				if err := a.saveSeries(results); err != nil {
					return err
				}
			}
			return a.write(cmd, results)
		},
	}
	cmd.Flags().Uint64("max", 0, "largest value in the series (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "compute the series for every variant")
	cmd.Flags().BoolVar(&save, "save", false, "store the series in the data directory")
	return cmd
}

func (a *app) saveSeries(results []seriesResult) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	for i := range results {
		id, err := store.SaveSeries(results[i].Series)
		if err != nil {
			return sysError(fmt.Errorf("save series: %w", err))
		}
		results[i].RunID = id
		a.log.Info("saved series", slog.String("run_id", id), slog.String("variant", results[i].Variant.String()))
	}
	return nil
}
