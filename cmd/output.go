package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"catalog-sync/core/reconcile"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStates renders the per-record sync states as a table.
func printStates(w io.Writer, states []reconcile.SyncState) error {
	table := tablewriter.NewTable(w)
	table.Header("Status", "Name", "Category", "Source ID", "Loyverse ID", "Diffs")
	for _, s := range states {
		if err := table.Append(string(s.Status), s.Name, s.Category, s.SourceID, s.DownstreamID, strings.Join(s.Diffs, "; ")); err != nil {
			return err
		}
	}
	return table.Render()
}

// printReport renders the counters, the item results and the failures of a run.
func printReport(w io.Writer, report *reconcile.SyncReport) error {
	fmt.Fprintf(w, "Run %s (%s): %s\n", report.RunID, report.Family, report.Summary())

	if len(report.ItemResults) > 0 {
		table := tablewriter.NewTable(w)
		table.Header("Action", "Outcome", "Name", "Loyverse ID", "Message")
		for _, r := range report.ItemResults {
			if err := table.Append(string(r.Action), string(r.Outcome), r.Name, r.DownstreamID, r.Message); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	for _, e := range report.Errors {
		fmt.Fprintln(w, "  ! "+e)
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
// Without a terminal on stdin only --yes confirms.
func confirmDestructiveAction(yes bool) bool {
	if yes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
