// Package catalogsync exposes the reconcile engine of every catalog family
// as a service, over HTTP and to the CLI.
//
// A Service adds what a single engine call lacks: a per-family lock so two
// runs never overlap, coalescing of concurrent status reads, and an archive
// of sync reports in object storage under <prefix>/<family>/<run_id>.json.
//
// # HTTP Endpoints
//
//   - GET /sync/:family/status : per-record sync state.
//   - POST /sync/:family : runs a sync; body {itemIds, deleteOrphans, forceImageSync}.
//   - GET /sync/:family/reports : archived run ids, newest first.
//   - GET /sync/:family/reports/:id : one archived report.
package catalogsync
