package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/output"
)

var matchesCmd = &cobra.Command{
	Use:   "matches <id>",
	Short: "Show the best matches for a stored item",
	Long: `Score a stored item against every active report of the opposite kind.

Examples:
  campusfind matches sample-lost-8
  campusfind matches sample-lost-8 --explain
  campusfind matches 3f0c... -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runMatches,
}

func init() {
	rootCmd.AddCommand(matchesCmd)
}

func runMatches(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	item, matches, err := a.finder.Similar(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report := &output.MatchReport{Item: item, Matches: matches}
	if outputFmt == "json" {
		return output.JSONTo(w, report)
	}
	if err := output.MatchReportTo(w, report, explain); err != nil {
		return err
	}
	printBestMatch(w, NewTerminal(w), matches)
	return nil
}
