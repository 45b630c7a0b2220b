package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretKeys are masked by show and read without echo by set.
var secretKeys = map[string]bool{
	"google.api_key": true,
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage configuration",
	Long:        `View and change the settings stored in ~/.placemap/config.toml.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show every setting",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:         "get [key]",
	Short:       "Print one setting",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. The value is validated before it is stored.

When the value of a secret such as google.api_key is omitted it is read
from the terminal without echo.`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, key := range settingsService.Keys() {
		value := values[key]
		switch {
		case secretKeys[key] && value != "":
			value = maskAPIKey(value)
		case value == "":
			value = "(not set)"
		}
		cmd.Printf("%-28s %s\n", key, value)
	}

	if settings, err := settingsService.Get(); err == nil {
		if err := settings.Validate(); err != nil {
			cmd.Printf("\nWarning: %v\n", err)
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	value, ok := values[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case secretKeys[key]:
		cmd.Printf("Enter %s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}
	if value == "" {
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if secretKeys[key] {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
