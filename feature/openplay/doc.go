// Package openplay is the catalog family of open-play passes. Passes carry
// no category or image in the source; they all live in "Open Play".
package openplay
