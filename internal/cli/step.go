package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

type downResult struct {
	Variant collatz.Variant `json:"variant"`
	Value   uint64          `json:"value"`
	Next    uint64          `json:"next"`
}

type upResult struct {
	Variant      collatz.Variant `json:"variant"`
	Value        uint64          `json:"value"`
	Predecessors []uint64        `json:"predecessors"`
}

func newStepCmd(a *app) *cobra.Command {
	step := &cobra.Command{
		Use:   "step",
		Short: "Apply one step of the map without building a tree",
	}
	step.AddCommand(&cobra.Command{
		Use:   "down <n>",
		Short: "Print the successor of n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseValue(args[0])
			if err != nil {
				return err
			}
			next, err := collatz.Down(a.variant(), n)
			if err != nil {
				return classify(err)
			}
			return a.write(cmd, downResult{Variant: a.variant(), Value: n, Next: next})
		},
	})
	step.AddCommand(&cobra.Command{
		Use:   "up <n>",
		Short: "Print the predecessors of n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseValue(args[0])
			if err != nil {
				return err
			}
			pre, err := collatz.Up(a.variant(), n)
			if err != nil {
				return classify(err)
			}
			return a.write(cmd, upResult{Variant: a.variant(), Value: n, Predecessors: pre.Values()})
		},
	})
	return step
}
