// Package database handles the source catalog database connection and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections based on the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the preflight checks verify that every
// column an item adapter maps actually exists before a sync touches the table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "menu_items", []string{"id", "loyverse_id"})
package database
