// Package payforplay is the catalog family of pay-for-play activities.
//
// The source table has no column for the POS id, so records are always
// matched by name and nothing is written back.
package payforplay
