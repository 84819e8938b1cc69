package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/campusfind/internal/database"
)

var importCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import items from a YAML fixture file",
	Long: `Import lost and found reports from a YAML file.

Items whose ID already exists are skipped, so importing the same file
twice is safe. The file format is:

  items:
    - id: found-1          # optional, generated when empty
      kind: found
      name: Blue Backpack
      description: Navy blue backpack
      location: Library
      category: Bags
      color: Blue          # optional
      brand: Jansport      # optional
      contact: front desk  # optional
      date: "2024-01-15"   # optional, YYYY-MM-DD

Examples:
  campusfind import items.yaml
  campusfind import --sample     # Load the built-in demo corpus`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var importSample bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importSample, "sample", false, "Import the built-in demo corpus")
}

func runImport(cmd *cobra.Command, args []string) error {
	if importSample == (len(args) == 1) {
		return fmt.Errorf("specify either a file or --sample")
	}

	var (
		items  []database.Item
		err    error
		source = "sample corpus"
	)
	if importSample {
		items, err = database.SampleItems()
	} else {
		source = args[0]
		items, err = loadFixtureFile(args[0])
	}
	if err != nil {
		return err
	}

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	inserted, err := a.db.ImportItems(cmd.Context(), items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	a.logger.Info("import complete",
		zap.String("source", source),
		zap.Int("read", len(items)),
		zap.Int("inserted", inserted),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d item(s) from %s (%d already present)\n",
		inserted, len(items), source, len(items)-inserted)
	return nil
}

func loadFixtureFile(path string) ([]database.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	items, err := database.LoadFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return items, nil
}
