// Package reconcile keeps a POS catalog consistent with an authoritative
// source catalog, one catalog family at a time.
//
// The engine is generic. Every family supplies an Adapter that names its
// source schema, whether it persists the matched downstream id back to the
// source (the hint), whether images are compared, and which downstream
// categories it owns.
//
// # Architecture
//
// 1. Matcher: resolves each source record to at most one downstream record,
// by hint first and by case-folded name second. Matched ids are claimed so
// no downstream record is matched twice.
//
// 2. Differ: lists field mismatches of a matched pair in a fixed order
// (name, price, description, category, image presence). It performs no I/O.
//
// 3. CategoryResolver: maps category names to downstream ids for one run,
// creating missing categories once.
//
// 4. Engine.Status: read-only pass returning one SyncState per source record
// and per orphan.
//
// 5. Engine.RunSync: mutating pass that creates, updates and links records,
// optionally deletes orphans, and returns a SyncReport.
//
// # Failures
//
// RunSync never returns an error. Each failure lands in the report with a
// kind: item (the record failed), partial (the record synced but its image
// did not), orphan (one deletion failed) or fatal (the initial fetch failed).
//
// # Usage Example
//
//	engine := reconcile.NewEngine(menu.NewAdapter(), sourceClient, posClient, logger)
//
//	states, err := engine.Status(ctx)
//
//	report := engine.RunSync(ctx, reconcile.SyncInput{DeleteOrphans: true})
//	for _, f := range report.FailuresOf(reconcile.FailurePartial) {
//	    logger.Warn(f.Error())
//	}
package reconcile
