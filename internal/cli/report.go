package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/config"
	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

// itemFlags holds the attribute flags shared by report and preview
type itemFlags struct {
	name        string
	description string
	location    string
	category    string
	color       string
	brand       string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Item name, e.g. \"Blue Backpack\"")
	cmd.Flags().StringVar(&f.description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&f.location, "location", "", "Where it was lost or found")
	cmd.Flags().StringVar(&f.category, "category", "", "Item category")
	cmd.Flags().StringVar(&f.color, "color", "", "Primary color")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand name")
}

func (f *itemFlags) query(kind match.Kind) match.Item {
	return match.Item{
		Kind:        kind,
		Name:        strings.TrimSpace(f.name),
		Description: strings.TrimSpace(f.description),
		Location:    strings.TrimSpace(f.location),
		Category:    strings.TrimSpace(f.category),
		Color:       strings.TrimSpace(f.color),
		Brand:       strings.TrimSpace(f.brand),
	}
}

var reportCmd = &cobra.Command{
	Use:   "report <lost|found>",
	Short: "Report a lost or found item and show likely matches",
	Long: `Store a new report and score it against every active report of the
opposite kind.

Examples:
  campusfind report lost --name "Blue Backpack" --location Library --category Bags \
      --color Blue --description "navy blue backpack with keychain"
  campusfind report found --name "Keys" --location Hostel --contact "front desk"
  campusfind report lost --name "Watch" --location Library --explain`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(match.KindLost), string(match.KindFound)},
	RunE:      runReport,
}

var (
	reportItem    itemFlags
	reportContact string
	reportDate    string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportItem.register(reportCmd)
	reportCmd.Flags().StringVar(&reportContact, "contact", "", "How the reporter can be reached")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Date lost or found (YYYY-MM-DD, default: today)")
	_ = reportCmd.MarkFlagRequired("name")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	kind := match.Kind(args[0])
	if !kind.Valid() {
		return finder.ErrInvalidKind
	}

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	q := reportItem.query(kind)
	item := &database.Item{
		Kind:        kind,
		Name:        q.Name,
		Description: q.Description,
		Location:    q.Location,
		Category:    q.Category,
		Color:       database.OptionalString(q.Color),
		Brand:       database.OptionalString(q.Brand),
		Contact:     database.OptionalString(strings.TrimSpace(reportContact)),
	}

	if reportDate != "" {
		date, err := time.ParseInLocation(time.DateOnly, reportDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", reportDate)
		}
		item.ReportedAt = date
	}

	term := NewTerminal(cmd.ErrOrStderr())
	for _, warning := range catalogWarnings(a.cfg.Catalog, q) {
		fmt.Fprintln(cmd.ErrOrStderr(), term.Color(ColorYellow, "warning: ")+warning)
	}

	matches, err := a.finder.Report(ctx, item)
	if err != nil {
		return err
	}

	report := &output.MatchReport{Item: item, Matches: matches}
	if outputFmt == "json" {
		return output.JSONTo(w, report)
	}

	out := NewTerminal(w)
	fmt.Fprintf(w, "Reported %s item %s\n\n", out.Color(KindColor(kind), string(kind)), item.ID)
	if err := output.MatchReportTo(w, report, explain); err != nil {
		return err
	}
	printBestMatch(w, out, matches)
	return nil
}

// catalogWarnings flags location and category tags outside the catalog.
// Unknown tags are still accepted but only match identical tags.
func catalogWarnings(catalog config.CatalogConfig, q match.Item) []string {
	var warnings []string
	if q.Location != "" && !catalog.HasLocation(q.Location) {
		warnings = append(warnings, fmt.Sprintf("location %q is not in the catalog (%s)",
			q.Location, strings.Join(catalog.Locations, ", ")))
	}
	if q.Category != "" && !catalog.HasCategory(q.Category) {
		warnings = append(warnings, fmt.Sprintf("category %q is not in the catalog (%s)",
			q.Category, strings.Join(catalog.Categories, ", ")))
	}
	return warnings
}

func printBestMatch(w io.Writer, t *Terminal, matches []finder.Match) {
	if len(matches) == 0 {
		return
	}
	best := matches[0]
	conf := best.Confidence()
	fmt.Fprintf(w, "\nBest match: %s (%d%%, %s confidence)\n",
		best.Item.Name, best.Score, t.Color(ConfidenceColor(conf), string(conf)))
}
