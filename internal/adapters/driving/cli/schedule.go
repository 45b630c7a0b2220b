package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Background dataset refresh",
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Refresh the dataset once and record the result",
	Args:  cobra.NoArgs,
	RunE:  runScheduleRun,
}

var scheduleStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Refresh the dataset periodically until interrupted",
	Long: `Runs the refresh scheduler in the foreground. The interval is taken from
scheduler.refresh_interval; scheduler.enabled must be true.`,
	Args: cobra.NoArgs,
	RunE: runScheduleStart,
}

func init() {
	scheduleCmd.AddCommand(scheduleRunCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleRun(cmd *cobra.Command, _ []string) error {
	if schedulerService == nil {
		return errDatasetNotConfigured
	}

	result, err := schedulerService.RunNow(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("refresh failed: %s", result.Error)
	}

	cmd.Printf("Refreshed %d places (%d rows with errors) in %s.\n",
		result.ItemsProcessed, result.ItemsFailed, result.EndedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return nil
}

func runScheduleStart(cmd *cobra.Command, _ []string) error {
	if schedulerService == nil {
		return errDatasetNotConfigured
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && !settings.Scheduler.Enabled {
			return errors.New("scheduler is disabled: run 'placemap config set scheduler.enabled true'")
		}
	}

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")
	err := schedulerService.Start(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return schedulerService.Stop()
	}
	return err
}
