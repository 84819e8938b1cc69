package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const configHeader = `# campusfind configuration
#
# [matching.*] profiles: results must score strictly above min_score (0-100),
# at most top_k are returned.
#   report  - shown right after an item is reported
#   search  - free-text preview, nothing stored
#   similar - matches for an already stored item
#
# [engine] candidates are scored on a worker pool once a corpus reaches
# parallel_threshold items.
#
# [catalog] tags offered to reporters; unknown tags are accepted with a warning.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(w, "Config file already exists at %s\n", configPath)
		fmt.Fprintln(w, "Use 'campusfind config show' to view current configuration")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(configHeader), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Created config file at %s\n", configPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Run 'campusfind import --sample' to load a demo corpus")
	fmt.Fprintln(w, "  2. Run 'campusfind report lost --name ...' to report an item")
	fmt.Fprintln(w, "  3. Run 'campusfind serve' or 'campusfind mcp' to expose the register")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Fprintln(w, "# No config file found; showing built-in defaults.")
		fmt.Fprintln(w, "# Run 'campusfind config init' to create one.")
		fmt.Fprintln(w)
		data, err = config.Default().Marshal()
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "# Config file: %s\n\n", configPath)
	}

	fmt.Fprintln(w, string(data))
	return nil
}
