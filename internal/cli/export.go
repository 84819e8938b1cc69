package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export items to CSV or JSON",
	Long: `Export lost and found reports.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of item objects

Examples:
  campusfind export --format=csv > items.csv
  campusfind export --format=json --kind=found > found.json
  campusfind export --format=csv --active-only > open.csv`,
	RunE: runExport,
}

var (
	exportFormat     string
	exportKind       string
	exportActiveOnly bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportKind, "kind", "", "Only export one kind (lost, found)")
	exportCmd.Flags().BoolVar(&exportActiveOnly, "active-only", false, "Skip claimed and closed items")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	opts := database.ListOptions{}
	if exportKind != "" {
		kind := match.Kind(exportKind)
		if !kind.Valid() {
			return finder.ErrInvalidKind
		}
		opts.Kind = &kind
	}
	if exportActiveOnly {
		status := database.StatusActive
		opts.Status = &status
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

	if exportFormat == "csv" {
		return exportCSV(cmd.OutOrStdout(), items)
	}
	return exportJSON(cmd.OutOrStdout(), items)
}

// ExportRow represents a row in the export (with additional computed fields)
type ExportRow struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Brand       string `json:"brand"`
	Contact     string `json:"contact"`
	Status      string `json:"status"`
	ReportedAt  string `json:"reported_at"`
	DaysSince   int    `json:"days_since_reported"`
	CreatedAt   string `json:"created_at"`
}

var exportHeader = []string{
	"id", "kind", "name", "description", "location", "category", "color", "brand",
	"contact", "status", "reported_at", "days_since_reported", "created_at",
}

func toExportRow(i database.Item) ExportRow {
	row := ExportRow{
		ID:          i.ID,
		Kind:        string(i.Kind),
		Name:        i.Name,
		Description: i.Description,
		Location:    i.Location,
		Category:    i.Category,
		Status:      string(i.Status),
		ReportedAt:  i.ReportedAt.Format(time.RFC3339),
		DaysSince:   i.DaysSinceReported(),
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
	}
	if i.Color != nil {
		row.Color = *i.Color
	}
	if i.Brand != nil {
		row.Brand = *i.Brand
	}
	if i.Contact != nil {
		row.Contact = *i.Contact
	}
	return row
}

func exportCSV(out io.Writer, items []database.Item) error {
	w := csv.NewWriter(out)

	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, i := range items {
		row := toExportRow(i)
		record := []string{
			row.ID,
			row.Kind,
			row.Name,
			row.Description,
			row.Location,
			row.Category,
			row.Color,
			row.Brand,
			row.Contact,
			row.Status,
			row.ReportedAt,
			strconv.Itoa(row.DaysSince),
			row.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(out io.Writer, items []database.Item) error {
	rows := make([]ExportRow, len(items))
	for n, i := range items {
		rows[n] = toExportRow(i)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
