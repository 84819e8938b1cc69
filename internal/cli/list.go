package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reported items",
	Long: `List lost and found reports, newest first, with optional filters.

Examples:
  campusfind list                          # List everything
  campusfind list --kind=lost --status=active
  campusfind list --location=Library --since=7d
  campusfind list -o json                  # Output as JSON`,
	RunE: runList,
}

var (
	listKind     string
	listStatus   string
	listLocation string
	listCategory string
	listSince    string
	listLimit    int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind (lost, found)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (active, claimed, closed)")
	listCmd.Flags().StringVar(&listLocation, "location", "", "Filter by location tag")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category tag")
	listCmd.Flags().StringVar(&listSince, "since", "", "Filter by report time (e.g., 7d, 2w, 1m)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := database.ListOptions{
		Limit: listLimit,
	}

	if listKind != "" {
		kind := match.Kind(listKind)
		if !kind.Valid() {
			return finder.ErrInvalidKind
		}
		opts.Kind = &kind
	}

	if listStatus != "" {
		status := database.ItemStatus(listStatus)
		if !status.Valid() {
			return fmt.Errorf("%w: %q", database.ErrInvalidStatus, listStatus)
		}
		opts.Status = &status
	}

	if listLocation != "" {
		opts.Location = &listLocation
	}
	if listCategory != "" {
		opts.Category = &listCategory
	}

	if listSince != "" {
		since, err := parseDuration(listSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.db.ListItems(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	if items == nil {
		items = []database.Item{}
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, items)
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use d, w, or m)", unit)
	}
}
