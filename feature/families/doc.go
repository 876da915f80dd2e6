// Package families registers the catalog families by name.
package families
