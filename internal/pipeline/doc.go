// Package pipeline orchestrates a snapsort run: discovering candidates,
// planning destinations, relocating items, and aggregating outcomes into a
// summary. Execution is a single sequential pass; per-item failures are
// absorbed so the run always attempts every discovered candidate.
package pipeline
