// Package loyverse is a small client for the Loyverse POS REST API covering
// the item and category calls the catalog sync needs.
//
// Every API call waits on a shared rate limiter. List calls follow the
// response cursor until it is empty and skip deleted records. Non-2xx
// responses come back as *APIError, which matches ErrNotFound and
// ErrRateLimited through errors.Is.
package loyverse
