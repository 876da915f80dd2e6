package cmd

import (
	"errors"
	"os"

	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Run preflight checks",
	Long: `Checks that every family's source table has its mapped columns, that the
Loyverse API answers, and that the report bucket holds a folder per family.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		l := d.log
		defer l.Sync()

		svc := d.integrityService()
		report := map[string]any{}

		server, err := svc.CheckServer()
		if err != nil {
			return err
		}
		report["server"] = server
		if !server.Matched {
			l.Warn("Source schema mismatch", zap.Strings("errors", server.Errors))
		}

		pos := svc.CheckPOS(ctx)
		report["pos"] = pos
		if !pos.Reachable {
			l.Error("Loyverse unreachable", zap.String("error", pos.Error))
		}

		missing, err := svc.CheckStructure(ctx)
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			l.Info("Report archiving disabled, skipping structure check")
		case err != nil:
			return err
		case len(missing) > 0 && fixFlag:
			if err := svc.FixStructure(ctx, missing); err != nil {
				return err
			}
			report["structure"] = map[string]any{"status": "fixed", "fixed": missing}
		default:
			if len(missing) > 0 {
				l.Warn("Missing report folders detected. Use --fix to create them.", zap.Strings("missing", missing))
			}
			report["structure"] = map[string]any{"status": "checked", "missing": missing}
		}

		return printJSON(os.Stdout, report)
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the report bucket and missing folders")
	RootCmd.AddCommand(integrityCmd)
}
