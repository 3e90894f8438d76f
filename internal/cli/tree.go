package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

type treeResult struct {
	Variant collatz.Variant  `json:"variant"`
	Max     uint64           `json:"max"`
	Size    int              `json:"size"`
	Nodes   []collatz.Record `json:"nodes"`
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		rounds int
		fill   bool
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Grow the tree and print every node breadth-first",
		Long: "Grow the tree upward from 1 in rounds, each expanding at most up_batch\n" +
			"nodes with values up to --max. With --fill the tree instead holds every\n" +
			"value up to --max.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rounds < 1 {
				return userError(fmt.Errorf("rounds must be positive, got %d", rounds))
			}
			g, err := a.newGraph()
			if err != nil {
				return classify(err)
			}
			limit := a.cfg.Max
			if fill {
				if err := g.GenerateFillDown(limit); err != nil {
					return classify(err)
				}
			} else {
				for range rounds {
					if err := g.GenerateUp(limit); err != nil {
						return classify(err)
					}
				}
			}
			a.log.Info("built tree",
				slog.String("variant", g.Variant().String()),
				slog.Uint64("max", limit),
				slog.Int("nodes", g.Len()))
			return a.write(cmd, treeResult{
				Variant: g.Variant(),
				Max:     limit,
				Size:    g.Len(),
				Nodes:   slices.Collect(g.All()),
			})
		},
	}
	cmd.Flags().Uint64("max", 0, "largest value in the tree (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of upward expansion rounds")
	cmd.Flags().BoolVar(&fill, "fill", false, "include every value up to --max instead of growing upward")
	return cmd
}
