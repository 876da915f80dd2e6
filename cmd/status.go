package cmd

import (
	"fmt"
	"os"

	"catalog-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statusJSON bool

// statusCmd prints the sync state of one family.
var statusCmd = &cobra.Command{
	Use:   "status <family>",
	Short: "Show the sync state of every record of a family",
	Long: `Compares the source catalog with Loyverse without changing anything.

Each source record is reported as SYNCED, MODIFIED, LINKED_ONLY or
NOT_IN_LOYVERSE, followed by the Loyverse records in the family's categories
that have no source record (NOT_IN_NOTION).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer d.log.Sync()

		svc, err := d.service(args[0])
		if err != nil {
			return err
		}

		states, err := svc.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute status: %w", err)
		}

		if statusJSON {
			return printJSON(os.Stdout, states)
		}

		counts := make(map[reconcile.SyncStatus]int)
		for _, s := range states {
			counts[s.Status]++
		}
		d.log.Info("Sync status",
			zap.String("family", svc.Family()),
			zap.Int("synced", counts[reconcile.StatusSynced]),
			zap.Int("modified", counts[reconcile.StatusModified]),
			zap.Int("linked_only", counts[reconcile.StatusLinkedOnly]),
			zap.Int("not_in_loyverse", counts[reconcile.StatusNotInDownstream]),
			zap.Int("not_in_source", counts[reconcile.StatusNotInSource]),
		)
		return printStates(os.Stdout, states)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the states as JSON")
	RootCmd.AddCommand(statusCmd)
}
