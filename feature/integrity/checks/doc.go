// Package checks holds the individual preflight checks.
package checks
