package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

var (
	placesTypes     []string
	placesUsers     []string
	placesCities    []string
	placesMinRating float64
	placesRefresh   bool
	placesJSON      bool
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List reviewed places",
	Long: `Lists the merged places with their reviews.

Filters combine: a place must match every filter given, and any value
within a repeated filter. Output is JSON when stdout is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runPlaces,
}

func init() {
	placesCmd.Flags().StringSliceVarP(&placesTypes, "type", "t", nil, "only places of this type (repeatable)")
	placesCmd.Flags().StringSliceVarP(&placesUsers, "user", "u", nil, "only places reviewed by this user (repeatable)")
	placesCmd.Flags().StringSliceVarP(&placesCities, "city", "c", nil, "only places in this city (repeatable)")
	placesCmd.Flags().Float64Var(&placesMinRating, "min-rating", 0, "only places with a review rated at least this")
	placesCmd.Flags().BoolVar(&placesRefresh, "refresh", false, "rebuild the dataset before listing")
	placesCmd.Flags().BoolVar(&placesJSON, "json", false, "output places as JSON")
	rootCmd.AddCommand(placesCmd)
}

func runPlaces(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errDatasetNotConfigured
	}
	if placesMinRating < 0 || placesMinRating > domain.MaxRanking {
		return fmt.Errorf("min-rating must be between 0 and %d", domain.MaxRanking)
	}

	filter := domain.PlaceFilter{
		Types:     placesTypes,
		Users:     placesUsers,
		Cities:    placesCities,
		MinRating: placesMinRating,
	}
	places, err := datasetService.Query(cmd.Context(), filter, placesRefresh)
	if err != nil {
		return fmt.Errorf("listing places failed: %w", err)
	}

	if useJSON(cmd, placesJSON) {
		return outputJSON(cmd, places)
	}
	return outputPlacesTable(cmd, places)
}

func outputPlacesTable(cmd *cobra.Command, places []domain.Place) error {
	if len(places) == 0 {
		cmd.Println("No places found.")
		return nil
	}

	for i := range places {
		p := &places[i]
		name := p.Location.Name
		if name == "" {
			name = p.Location.DisplayName
		}

		cmd.Printf("  [%d] %s", i+1, name)
		if p.Location.City != "" {
			cmd.Printf(" - %s", p.Location.City)
		}
		if avg := p.AverageRanking(); avg > 0 {
			cmd.Printf(" (%.1f)", avg)
		}
		cmd.Println()
		if len(p.Types) > 0 {
			cmd.Printf("      %s\n", strings.Join(p.Types, ", "))
		}
		for _, r := range p.Reviews {
			cmd.Printf("      %s: %s", r.User, formatRanking(r))
			if r.Notes != "" {
				cmd.Printf(" %q", r.Notes)
			}
			cmd.Println()
		}
		if p.Location.URL != "" {
			cmd.Printf("      %s\n", p.Location.URL)
		}
	}
	cmd.Printf("\n%d places\n", len(places))
	return nil
}

func formatRanking(r domain.Review) string {
	if !r.IsRanked() {
		return "unrated"
	}
	return fmt.Sprintf("%g/%d", r.Ranking, domain.MaxRanking)
}
