// Package services holds the error taxonomy and context annotations shared by
// the pipeline phases.
//
// Errors are classified by wrapping them with sentinel markers so callers can
// distinguish run-fatal conditions (bad source root, misconfiguration) from
// per-item failures that only affect a single relocation outcome.
package services
