// Package archive unpacks zip archives into scratch space so their entries
// can flow through the pipeline like ordinary files, keeping each entry's
// original name attached for destination placement.
package archive
