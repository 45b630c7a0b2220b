// Package cli implements the placemap command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
	"github.com/custodia-labs/placemap/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Command annotations that narrow what bootstrap wires.
const (
	annotationNoServices   = "placemap/no-services"
	annotationSettingsOnly = "placemap/settings-only"
)

// Services are the ports the commands drive. Dataset and Scheduler are nil
// when no Google credential is configured.
type Services struct {
	Dataset   driving.DatasetService
	Settings  driving.SettingsService
	Cache     driven.CacheStore
	Scheduler driving.Scheduler

	// Close releases the underlying stores.
	Close func() error
}

// BootstrapOptions tell the bootstrap function what a command needs.
type BootstrapOptions struct {
	// ConfigDir overrides the default configuration directory.
	ConfigDir string

	// SettingsOnly skips opening stores and API clients.
	SettingsOnly bool
}

// BootstrapFunc builds the services from the stored configuration.
type BootstrapFunc func(ctx context.Context, opts BootstrapOptions) (*Services, error)

var (
	datasetService   driving.DatasetService
	settingsService  driving.SettingsService
	cacheStore       driven.CacheStore
	schedulerService driving.Scheduler

	bootstrap    BootstrapFunc
	closeStores  func() error
	verbose      bool
	configDir    string
	isTerminalFn = isTerminal
)

var rootCmd = &cobra.Command{
	Use:   "placemap",
	Short: "Turn a spreadsheet of place reviews into geocoded places",
	Long: `placemap reads a table of place reviews from a Google Sheet, resolves
every map link into coordinates, and merges reviews of the same place.

Rows that cannot be placed are reported rather than dropped.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.placemap)")
}

// SetBootstrap installs the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing bootstrap.
func SetServices(s *Services) {
	datasetService = s.Dataset
	settingsService = s.Settings
	cacheStore = s.Cache
	schedulerService = s.Scheduler
	closeStores = s.Close
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}
	services, err := bootstrap(cmd.Context(), BootstrapOptions{
		ConfigDir:    configDir,
		SettingsOnly: cmd.Annotations[annotationSettingsOnly] != "",
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeStores == nil {
		return nil
	}
	err := closeStores()
	closeStores = nil
	return err
}

var errDatasetNotConfigured = errors.New(
	"dataset service not configured: run 'placemap config set sheet.document_id <id>' " +
		"and 'placemap config set google.api_key'")

// useJSON reports whether output should be JSON: when asked, or when stdout is not a terminal.
func useJSON(cmd *cobra.Command, asked bool) bool {
	return asked || !isTerminalFn(cmd.OutOrStdout())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
