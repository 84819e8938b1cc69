package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lost-and-found statistics",
	Long: `Display item counts by kind and status.

Examples:
  campusfind stats             # Overall counts
  campusfind stats --detailed  # Active items by location and category`,
	RunE: runStats,
}

var statsDetailed bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsDetailed, "detailed", false, "Break active items down by location and category")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.db.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if !statsDetailed {
		return output.OutputTo(w, outputFmt, stats)
	}

	detailed, err := getDetailedStats(ctx, a.db, stats)
	if err != nil {
		return fmt.Errorf("failed to get detailed stats: %w", err)
	}

	if outputFmt == "json" {
		return output.JSONTo(w, detailed)
	}

	printDetailedStats(w, detailed)
	return nil
}

// DetailedStats contains extended statistics
type DetailedStats struct {
	Basic      *database.Stats `json:"basic"`
	ByLocation []TagStat       `json:"by_location"`
	ByCategory []TagStat       `json:"by_category"`
}

// TagStat counts active lost and found items sharing a tag
type TagStat struct {
	Tag   string `json:"tag"`
	Lost  int    `json:"lost"`
	Found int    `json:"found"`
}

func getDetailedStats(ctx context.Context, db *database.DB, basic *database.Stats) (*DetailedStats, error) {
	status := database.StatusActive
	items, err := db.ListItems(ctx, database.ListOptions{Status: &status})
	if err != nil {
		return nil, err
	}

	return &DetailedStats{
		Basic:      basic,
		ByLocation: tagStats(items, func(i database.Item) string { return i.Location }),
		ByCategory: tagStats(items, func(i database.Item) string { return i.Category }),
	}, nil
}

// tagStats groups items by tag, busiest tag first
func tagStats(items []database.Item, tag func(database.Item) string) []TagStat {
	byTag := make(map[string]*TagStat)
	for _, i := range items {
		t := tag(i)
		if t == "" {
			t = "(none)"
		}
		s, ok := byTag[t]
		if !ok {
			s = &TagStat{Tag: t}
			byTag[t] = s
		}
		if i.Kind == match.KindLost {
			s.Lost++
		} else {
			s.Found++
		}
	}

	stats := make([]TagStat, 0, len(byTag))
	for _, s := range byTag {
		stats = append(stats, *s)
	}
	slices.SortFunc(stats, func(a, b TagStat) int {
		if d := (b.Lost + b.Found) - (a.Lost + a.Found); d != 0 {
			return d
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return stats
}

func printDetailedStats(w io.Writer, d *DetailedStats) {
	fmt.Fprintln(w, "Lost & Found Statistics (Detailed)")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "  Total items:   %d\n", d.Basic.TotalItems)
	fmt.Fprintf(w, "  Active lost:   %d\n", d.Basic.ActiveLost)
	fmt.Fprintf(w, "  Active found:  %d\n", d.Basic.ActiveFound)
	fmt.Fprintf(w, "  Claimed:       %d\n", d.Basic.Claimed)
	fmt.Fprintf(w, "  Closed:        %d\n", d.Basic.Closed)
	fmt.Fprintln(w)

	printTagStats(w, "Active Items by Location", d.ByLocation)
	printTagStats(w, "Active Items by Category", d.ByCategory)
}

func printTagStats(w io.Writer, title string, stats []TagStat) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", 30))
	if len(stats) == 0 {
		fmt.Fprintln(w, "  No active items")
		fmt.Fprintln(w)
		return
	}
	for _, s := range stats {
		fmt.Fprintf(w, "  %-20s %s%s  lost %d / found %d\n",
			truncate(s.Tag, 20), strings.Repeat("█", s.Lost), strings.Repeat("░", s.Found), s.Lost, s.Found)
	}
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
