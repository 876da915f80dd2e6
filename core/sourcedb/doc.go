// Package sourcedb implements reconcile.SourceClient on top of the source
// catalog database.
//
// Each family maps its logical fields to physical columns through a
// reconcile.SourceSchema. The client selects only mapped columns, filters
// on the active column when one is mapped, and fails with
// reconcile.ErrUnknownField when a mapped column does not exist.
package sourcedb
