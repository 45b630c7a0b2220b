package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

var cacheTiers []string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lookup cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached data",
	Long: `Clears cached data so the next build refetches it.

Tiers:
  grid     table metadata and rows read from the spreadsheet
  place    geocoded place lookups
  dataset  the last built dataset

Without --tier every tier is cleared.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	cacheClearCmd.Flags().StringSliceVar(&cacheTiers, "tier", nil, "tier to clear: grid, place or dataset (repeatable)")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if cacheStore == nil {
		return errors.New("cache not configured")
	}

	tiers := domain.AllCacheTiers
	if len(cacheTiers) > 0 {
		tiers = make([]domain.CacheTier, 0, len(cacheTiers))
		for _, name := range cacheTiers {
			tier := domain.CacheTier(name)
			if !tier.IsValid() {
				return fmt.Errorf("unknown cache tier %q", name)
			}
			tiers = append(tiers, tier)
		}
	}

	for _, tier := range tiers {
		if err := cacheStore.Clear(cmd.Context(), tier.Prefix()); err != nil {
			return fmt.Errorf("clearing %s cache failed: %w", tier, err)
		}
		cmd.Printf("Cleared %s cache.\n", tier)
	}
	return nil
}
