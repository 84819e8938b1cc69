package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview matches for a partial description without saving",
	Long: `Score a partial description against stored reports. Nothing is saved.

A lost query (the default) is compared with found items and vice versa.

Examples:
  campusfind preview --description "black umbrella"
  campusfind preview --kind found --location Library --color Red
  campusfind preview --location Cafeteria --min-score 0 --top-k 10`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var (
	previewItem     itemFlags
	previewKind     string
	previewMinScore int
	previewTopK     int
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewItem.register(previewCmd)
	previewCmd.Flags().StringVar(&previewKind, "kind", string(match.KindLost), "Kind of the query (lost, found)")
	previewCmd.Flags().IntVar(&previewMinScore, "min-score", 0, "Only show matches scoring above this (default: search profile)")
	previewCmd.Flags().IntVar(&previewTopK, "top-k", 0, "Maximum number of matches (default: search profile)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	query := previewItem.query(match.Kind(previewKind))

	var matches []finder.Match
	if cmd.Flags().Changed("min-score") || cmd.Flags().Changed("top-k") {
		opts, err := a.finder.Options(finder.ProfileSearch)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("min-score") {
			opts.MinScore = previewMinScore
		}
		if cmd.Flags().Changed("top-k") {
			opts.TopK = previewTopK
		}
		matches, err = a.finder.MatchWith(ctx, query, opts)
		if err != nil {
			return err
		}
	} else {
		matches, err = a.finder.Preview(ctx, query)
		if err != nil {
			return err
		}
	}

	if outputFmt == "json" {
		return output.JSONTo(w, matches)
	}
	if err := output.MatchesTable(w, matches, explain); err != nil {
		return err
	}
	printBestMatch(w, NewTerminal(w), matches)
	return nil
}
