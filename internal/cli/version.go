package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the reviewdash release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/reviewdash"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reviewdash version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "reviewdash v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
