package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

type orbitResult struct {
	Variant      collatz.Variant  `json:"variant"`
	Value        uint64           `json:"value"`
	Depth        int              `json:"depth"`
	HighestPoint uint64           `json:"highest_point"`
	Orbit        []collatz.Record `json:"orbit"`
}

type ancestorResult struct {
	Variant  collatz.Variant `json:"variant"`
	A        uint64          `json:"a"`
	B        uint64          `json:"b"`
	Ancestor collatz.Record  `json:"ancestor"`
}

// graphWith builds a graph of the configured variant holding the orbits
// of values.
func (a *app) graphWith(values ...uint64) (*collatz.Graph, error) {
	g, err := a.newGraph()
	if err != nil {
		return nil, classify(err)
	}
	for _, n := range values {
		if err := g.GenerateDown(n); err != nil {
			return nil, classify(err)
		}
	}
	return g, nil
}

func newOrbitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orbit <n>",
		Short: "Print the trajectory of n down to 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseValue(args[0])
			if err != nil {
				return err
			}
			g, err := a.graphWith(n)
			if err != nil {
				return err
			}
			rec, err := g.Lookup(n)
			if err != nil {
				return classify(err)
			}
			orbit, err := g.Orbit(n)
			if err != nil {
				return classify(err)
			}
			return a.write(cmd, orbitResult{
				Variant:      g.Variant(),
				Value:        n,
				Depth:        rec.Depth,
				HighestPoint: rec.HighestPoint,
				Orbit:        append(slices.Collect(orbit), g.Root()),
			})
		},
	}
}

func newDepthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "depth <n>...",
		Short: "Print the depth and highest point of each value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			g, err := a.graphWith(values...)
			if err != nil {
				return err
			}
			records := make([]collatz.Record, len(values))
			for i, n := range values {
				if records[i], err = g.Lookup(n); err != nil {
					return classify(err)
				}
			}
			return a.write(cmd, records)
		},
	}
}

func newAncestorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ancestor <a> <b>",
		Short: "Print the common ancestor of two values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			g, err := a.graphWith(values...)
			if err != nil {
				return err
			}
			ca, err := g.CommonAncestor(values[0], values[1])
			if err != nil {
				return classify(err)
			}
			rec, err := g.Lookup(ca)
			if err != nil {
				return classify(err)
			}
			return a.write(cmd, ancestorResult{Variant: g.Variant(), A: values[0], B: values[1], Ancestor: rec})
		},
	}
}
