package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

const modulePath = "github.com/mesh-intelligence/collatz"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the collatz version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "collatz v%s\nmodule: %s\n", collatz.Version, modulePath)
			return nil
		},
	}
}
