package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amaumene/coubarr/internal/scheduler"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Periodically refetch likes, download new coubs and verify the tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup()
			if err != nil {
				return err
			}
			defer app.Close()

			sched := scheduler.NewScheduler(app.syncCtrl, app.downloadCtrl, app.checker, app.cfg.SyncSchedule, app.logger)
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			app.logger.Info("coubarr is watching")

			sig := <-sigChan
			app.logger.WithField("signal", sig).Info("Received shutdown signal")

			return nil
		},
	}
}
