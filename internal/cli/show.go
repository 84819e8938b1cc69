package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id|text>",
	Short: "Show item details",
	Long: `Show detailed information about a reported item.

The identifier can be:
  - Item ID
  - Any text; the newest item whose name, description, location,
    category or brand contains it is shown

Examples:
  campusfind show sample-found-1
  campusfind show "silver watch"`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	item, err := findItem(cmd.Context(), a.db, args[0])
	if err != nil {
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, item)
}

// findItem looks an item up by ID, falling back to the first text search hit
func findItem(ctx context.Context, db *database.DB, identifier string) (*database.Item, error) {
	item, err := db.GetItem(ctx, identifier)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, database.ErrItemNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	results, err := db.Search(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", database.ErrItemNotFound, identifier)
	}
	return &results[0], nil
}
