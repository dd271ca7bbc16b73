package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reviewdash/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard views over HTTP",
		Long:  "Load the input CSV once and serve the dashboard views as JSON until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			artifact, err := a.locateModel()
			if err != nil {
				return err
			}
			s, err := a.loadSession(ctx)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			srv := server.New(s, artifact, a.viewOptions(), a.logger)
			if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
				return sysError(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr config)")
	return cmd
}
