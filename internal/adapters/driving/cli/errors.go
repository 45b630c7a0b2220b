package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var errorsJSON bool

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List spreadsheet rows that could not be placed",
	Long: `Lists the rows of the last build that failed extraction, had no
usable place link, or could not be geocoded.`,
	Args: cobra.NoArgs,
	RunE: runErrors,
}

func init() {
	errorsCmd.Flags().BoolVar(&errorsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(errorsCmd)
}

func runErrors(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errDatasetNotConfigured
	}

	dataset, err := datasetService.Get(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("loading dataset failed: %w", err)
	}

	if useJSON(cmd, errorsJSON) {
		return outputJSON(cmd, dataset.Errors)
	}

	if len(dataset.Errors) == 0 {
		cmd.Println("No row errors.")
		return nil
	}

	for _, rowErr := range dataset.Errors {
		if rowErr.Meta == nil {
			cmd.Printf("  %s\n", rowErr.Error)
			continue
		}
		cmd.Printf("  row %d: %s\n", rowErr.Meta.Row, rowErr.Error)
		if rowErr.Meta.PlaceID != "" {
			cmd.Printf("      place: %s\n", rowErr.Meta.PlaceID)
		}
		keys := make([]string, 0, len(rowErr.Meta.Fields))
		for k := range rowErr.Meta.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v := rowErr.Meta.Fields[k]; v != "" {
				cmd.Printf("      %s: %s\n", k, v)
			}
		}
	}
	cmd.Printf("\n%d rows with errors\n", len(dataset.Errors))
	return nil
}
