package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
)

// MatchReport is an item together with the matches found for it
type MatchReport struct {
	Item    *database.Item `json:"item"`
	Matches []finder.Match `json:"matches"`
}

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Item:
		return itemsTable(w, v)
	case *database.Item:
		return itemDetail(w, v)
	case []finder.Match:
		return MatchesTable(w, v, false)
	case *MatchReport:
		return MatchReportTo(w, v, false)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func itemsTable(w io.Writer, items []database.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Kind", "Name", "Location", "Category", "Status", "Reported")

	for _, i := range items {
		row := []string{
			truncate(i.ID, 36),
			string(i.Kind),
			truncate(i.Name, 30),
			i.Location,
			i.Category,
			string(i.Status),
			formatReported(i.DaysSinceReported()),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func itemDetail(w io.Writer, i *database.Item) error {
	fmt.Fprintf(w, "ID:          %s\n", i.ID)
	fmt.Fprintf(w, "Name:        %s\n", i.Name)
	fmt.Fprintf(w, "Kind:        %s\n", i.Kind)
	fmt.Fprintf(w, "Status:      %s\n", i.Status)
	fmt.Fprintf(w, "Location:    %s\n", i.Location)
	fmt.Fprintf(w, "Category:    %s\n", i.Category)

	if i.Color != nil && *i.Color != "" {
		fmt.Fprintf(w, "Color:       %s\n", *i.Color)
	}
	if i.Brand != nil && *i.Brand != "" {
		fmt.Fprintf(w, "Brand:       %s\n", *i.Brand)
	}
	if i.Contact != nil && *i.Contact != "" {
		fmt.Fprintf(w, "Contact:     %s\n", *i.Contact)
	}

	fmt.Fprintf(w, "Reported:    %s (%s)\n", i.ReportedAt.Format("Jan 02, 2006"), formatReported(i.DaysSinceReported()))

	if i.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(i.Description, 78))
	}

	return nil
}

// MatchesTable writes ranked matches. With explain set, each match is
// followed by its per-factor breakdown.
func MatchesTable(w io.Writer, matches []finder.Match, explain bool) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No potential matches.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Score", "Confidence", "ID", "Name", "Location", "Category")

	for n, m := range matches {
		row := []string{
			strconv.Itoa(n + 1),
			fmt.Sprintf("%d%%", m.Score),
			string(m.Confidence()),
			truncate(m.Item.ID, 36),
			truncate(m.Item.Name, 30),
			m.Item.Location,
			m.Item.Category,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	if explain {
		for n, m := range matches {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "#%d %s (%d%%)\n", n+1, m.Item.Name, m.Score)
			for _, line := range m.Explain() {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}

	return nil
}

// MatchReportTo writes an item followed by its matches
func MatchReportTo(w io.Writer, r *MatchReport, explain bool) error {
	if err := itemDetail(w, r.Item); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Potential matches (%d):\n", len(r.Matches))
	return MatchesTable(w, r.Matches, explain)
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Lost & Found Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total items:            %d\n", s.TotalItems)
	fmt.Fprintf(w, "Active lost:            %d\n", s.ActiveLost)
	fmt.Fprintf(w, "Active found:           %d\n", s.ActiveFound)
	fmt.Fprintf(w, "Claimed:                %d\n", s.Claimed)
	fmt.Fprintf(w, "Closed:                 %d\n", s.Closed)

	if s.TotalItems > 0 {
		resolved := float64(s.Claimed) / float64(s.TotalItems)
		fmt.Fprintf(w, "Claim rate:             %.1f%%\n", resolved*100)
	}

	return nil
}

func formatReported(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
