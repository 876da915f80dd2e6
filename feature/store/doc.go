// Package store is the catalog family of retail store items.
//
// A POS category belongs to the store when its name contains one of the
// Keywords, so categories such as "Gift Shop" or "Bookstore" are claimed
// without being listed. Records without a category fall back to "Store".
package store
