package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/output"
)

// newStatusCmd builds a command that moves an item to status
func newStatusCmd(use, short, long string, status database.ItemStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, args[0], status)
		},
	}
}

var (
	claimCmd = newStatusCmd("claim", "Mark an item as claimed by its owner",
		`Mark an item as claimed. Claimed items are no longer offered as matches.

Examples:
  campusfind claim sample-found-1`, database.StatusClaimed)

	closeCmd = newStatusCmd("close", "Close an item without a claim",
		`Close an item that was resolved some other way or withdrawn.
Closed items are no longer offered as matches.

Examples:
  campusfind close sample-lost-7`, database.StatusClosed)

	reopenCmd = newStatusCmd("reopen", "Return a claimed or closed item to active",
		`Make an item active again so it takes part in matching.

Examples:
  campusfind reopen sample-found-1`, database.StatusActive)
)

func init() {
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(reopenCmd)
}

func runSetStatus(cmd *cobra.Command, id string, status database.ItemStatus) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	a, err := openApp("warn")
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.db.UpdateItemStatus(ctx, id, status); err != nil {
		return err
	}

	item, err := a.db.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSONTo(w, item)
	}

	t := NewTerminal(w)
	fmt.Fprintf(w, "%s is now %s\n", item.Name, t.Color(StatusColor(item.Status), string(item.Status)))
	return nil
}
