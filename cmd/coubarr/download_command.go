package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newDownloadCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Fetch the likes listing and download every coub not yet on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runDownload(yes bool) error {
	app, err := setup()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coubs, err := app.syncCtrl.LikedCoubs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch likes listing: %w", err)
	}

	if !yes && !confirmProceed() {
		app.logger.Info("Download aborted")
		return nil
	}

	summary, err := app.downloadCtrl.ProcessAll(ctx, coubs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			app.logger.WithField("processed", summary.Total()).Warn("Interrupted, stopping between items")
			return nil
		}
		return err
	}

	return nil
}

// confirmProceed prompts before the bulk download starts. An empty answer
// or y/Y proceeds, anything else aborts the run.
func confirmProceed() bool {
	fmt.Print("Proceed to download. y/n (y) ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.TrimSpace(answer)
	return answer == "" || strings.EqualFold(answer, "y")
}
