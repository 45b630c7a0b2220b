package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var uniquesJSON bool

var uniquesCmd = &cobra.Command{
	Use:   "uniques",
	Short: "Show distinct types, reviewers and cities",
	Args:  cobra.NoArgs,
	RunE:  runUniques,
}

func init() {
	uniquesCmd.Flags().BoolVar(&uniquesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(uniquesCmd)
}

func runUniques(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errDatasetNotConfigured
	}

	dataset, err := datasetService.Get(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("loading dataset failed: %w", err)
	}

	if useJSON(cmd, uniquesJSON) {
		return outputJSON(cmd, dataset.Uniques)
	}

	cmd.Printf("Types:   %s\n", strings.Join(dataset.Uniques.Types, ", "))
	cmd.Printf("Users:   %s\n", strings.Join(dataset.Uniques.Users, ", "))
	cmd.Printf("Cities:  %s\n", strings.Join(dataset.Uniques.Cities, ", "))
	if len(dataset.Vocabulary) > 0 {
		cmd.Printf("Allowed: %s\n", strings.Join(dataset.Vocabulary, ", "))
	}
	return nil
}
