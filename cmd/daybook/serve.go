package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/handler"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/server"
)

// serveCmd runs the background workers and the local status API until the
// process is interrupted.
func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync in the background and serve the status API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger("daybook-serve", c.cfg.Log.Level)
			c.log = log

			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.RemoteConfigured() {
				log.Warn().Msg("no sync endpoint configured, changes stay queued")
			}
			app.StartWorkers(cmd.Context())

			handlers, err := handler.NewHandlers(app.Services, c.cfg.Server, c.cfg.App, log)
			if err != nil {
				return fmt.Errorf("error creating handlers: %w", err)
			}

			srv, err := server.NewServer(handlers, c.cfg.Server, log)
			if err != nil {
				return fmt.Errorf("error creating server: %w", err)
			}

			return srv.RunServer(cmd.Context())
		},
	}
}
