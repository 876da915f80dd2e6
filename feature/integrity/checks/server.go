package checks

import (
	"fmt"
	"sort"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"gorm.io/gorm"
)

// ServerReport is the result of the source schema check.
type ServerReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the schema state of one family's table.
type TableReport struct {
	Family         string   `json:"family"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckServerIntegrity verifies that every family's table has the columns
// its adapter maps.
func CheckServerIntegrity(db *gorm.DB, adapters []reconcile.Adapter) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, a := range adapters {
		schema := a.Schema()
		tbl := TableReport{Family: a.Name(), MissingColumns: []string{}, Status: "ok"}

		if err := schema.Validate(); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", a.Name(), err))
			tbl.Status = "error"
			report.Matched = false
			report.Tables[schema.Table] = tbl
			continue
		}

		wanted := make([]string, 0, len(schema.Columns))
		for _, col := range schema.Columns {
			wanted = append(wanted, col)
		}
		sort.Strings(wanted)

		missing, err := database.MissingColumns(db, schema.Table, wanted)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", schema.Table, err))
			tbl.Status = "error"
			report.Matched = false
		} else if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[schema.Table] = tbl
	}

	return report, nil
}
