// Package integrity provides preflight checks for a catalog sync deployment.
//
// It verifies that every family's source table has the columns its adapter
// maps, that the POS API answers, and that the report archive bucket holds a
// folder per family. The structure check can create what is missing.
package integrity
