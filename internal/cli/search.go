package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search items by text",
	Long: `Search all items by name, description, location, category or brand.

This is a plain substring search. Use 'campusfind preview' for scored matches.

Examples:
  campusfind search backpack
  campusfind search "airpods pro"
  campusfind search apple -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	query := strings.Join(args, " ")

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.db.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if results == nil {
		results = []database.Item{}
	}

	if outputFmt != "json" {
		if len(results) == 0 {
			fmt.Fprintf(w, "No items found matching: %s\n", query)
			return nil
		}
		fmt.Fprintf(w, "Found %d item(s) matching: %s\n\n", len(results), query)
	}

	return output.OutputTo(w, outputFmt, results)
}
