package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsAlerts/internal/app"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the alert pipeline on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(app.Options{})
			if err != nil {
				return err
			}

			base := cmd.Context()
			if base == nil {
				base = context.Background()
			}
			runCtx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return application.Serve(runCtx)
		},
	}
}
