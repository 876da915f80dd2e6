package cmd

import (
	"errors"
	"os"

	"catalog-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncItems         []string
	syncDeleteOrphans bool
	syncForceImages   bool
	syncJSON          bool
	yesConfirm        bool
)

// errSyncFailed makes the process exit non-zero when a run records failures.
var errSyncFailed = errors.New("sync finished with errors")

// syncCmd pushes one family's source records to Loyverse.
var syncCmd = &cobra.Command{
	Use:   "sync <family>",
	Short: "Push a family's catalog to Loyverse",
	Long: `Creates, updates and links Loyverse items from the source catalog.

Examples:
  # Sync every menu item
  sync menu

  # Sync two store items only
  sync store --items rec-1,rec-2

  # Also delete Loyverse items of the family that have no source record
  sync menu --delete-orphans --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringSliceVar(&syncItems, "items", nil, "Only act on these source record ids")
	syncCmd.Flags().BoolVar(&syncDeleteOrphans, "delete-orphans", false, "Delete Loyverse items in the family's categories that have no source record")
	syncCmd.Flags().BoolVar(&syncForceImages, "force-images", false, "Re-upload images even when nothing differs")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	l := d.log
	defer l.Sync()

	svc, err := d.service(args[0])
	if err != nil {
		return err
	}

	in := reconcile.SyncInput{
		ItemIDs:        syncItems,
		DeleteOrphans:  syncDeleteOrphans,
		ForceImageSync: syncForceImages,
	}

	if in.DeleteOrphans {
		states, err := svc.Status(ctx)
		if err != nil {
			return err
		}
		var orphans []reconcile.SyncState
		for _, s := range states {
			if s.Status == reconcile.StatusNotInSource {
				orphans = append(orphans, s)
			}
		}

		if len(orphans) == 0 {
			in.DeleteOrphans = false
			l.Info("No orphans to delete")
		} else {
			l.Warn("Orphans will be deleted from Loyverse", zap.Int("count", len(orphans)))
			if err := printStates(os.Stdout, orphans); err != nil {
				return err
			}
			if !confirmDestructiveAction(yesConfirm) {
				l.Warn("Operation cancelled by user. No changes were made.")
				return nil
			}
			for _, o := range orphans {
				in.OrphanIDs = append(in.OrphanIDs, o.DownstreamID)
			}
		}
	}

	l.Info("Starting sync", zap.String("family", svc.Family()), zap.Strings("items", in.ItemIDs))
	report := svc.Sync(ctx, in)

	if syncJSON {
		err = printJSON(os.Stdout, report)
	} else {
		err = printReport(os.Stdout, report)
	}
	if err != nil {
		return err
	}

	if len(report.Errors) > 0 {
		return errSyncFailed
	}
	return nil
}
