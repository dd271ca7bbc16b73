package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long:  "Write a default config.yaml if none exists and create the data directory used for exports.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.dataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "reviewdash initialized")
			fmt.Fprintln(out, "  config:", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
