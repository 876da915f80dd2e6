// Package lock serializes sync runs per catalog family.
//
// Two concurrent runs of one family race on category creation and can
// create the same item twice, so every run holds a lease on "sync:<family>".
// With Redis configured the lease is shared across processes; without it an
// in-process Local locker is used.
package lock
