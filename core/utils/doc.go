// Package utils provides common conversion helpers for values read from the
// source catalog database, where drivers hand back loosely typed column values.
package utils
