// Package middleware groups the Fiber middleware of the API.
//
//   - auth: rejects requests without the configured key, read from X-API-Key
//     or a Bearer Authorization header.
//   - rayid: keeps or generates the X-Ray-ID of every request and stores it in
//     the fiber locals so handlers can log with it.
//
// The start command registers rayid first, then request logging, then auth.
package middleware
