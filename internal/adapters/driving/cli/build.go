package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildJSON bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the dataset from the spreadsheet",
	Long: `Reads the source table, geocodes every row and merges reviews of the
same place. The result replaces the cached dataset.

Rows that fail are listed by 'placemap errors'.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "print the whole dataset as JSON")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errDatasetNotConfigured
	}

	dataset, err := datasetService.Get(cmd.Context(), true)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if buildJSON {
		return outputJSON(cmd, dataset)
	}

	cmd.Printf("Built %d places from the spreadsheet (%d rows with errors).\n",
		len(dataset.Places), len(dataset.Errors))
	if dataset.RunID != "" {
		cmd.Printf("Run: %s\n", dataset.RunID)
	}
	return nil
}
