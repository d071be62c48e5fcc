package planner

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"snapsort/internal/logging"
	"snapsort/internal/media"
)

// DateResolver is the metadata capability the planner depends on.
type DateResolver interface {
	Resolve(candidate media.Candidate) (media.CaptureDate, bool)
}

// PlannedItem is a candidate enriched with its resolved destination. It is
// only ever constructed with a known capture date.
type PlannedItem struct {
	Candidate       media.Candidate
	Date            media.CaptureDate
	DestinationPath string
}

// Planner assigns destination paths from capture dates. It performs no
// filesystem writes; the only I/O is the metadata read done by the resolver.
type Planner struct {
	logger   *slog.Logger
	resolver DateResolver
	root     string
}

// New constructs a planner targeting the given destination root.
func New(root string, resolver DateResolver, logger *slog.Logger) *Planner {
	return &Planner{
		logger:   logging.NewComponentLogger(logger, "planner"),
		resolver: resolver,
		root:     root,
	}
}

// Plan resolves the candidate's capture date and derives its destination as
// root/year/month/day/displayName. Candidates without a resolvable date get
// no destination and are reported as unplannable; a synthetic date is never
// fabricated for them.
func (p *Planner) Plan(candidate media.Candidate) (PlannedItem, bool) {
	date, ok := p.resolver.Resolve(candidate)
	if !ok {
		p.logger.Warn("no valid date, skipping item",
			logging.String("source", candidate.SourcePath),
			logging.String("file", candidate.DisplayName),
		)
		return PlannedItem{}, false
	}

	destination := filepath.Join(
		p.root,
		fmt.Sprintf("%04d", date.Year),
		fmt.Sprintf("%02d", date.Month),
		fmt.Sprintf("%02d", date.Day),
		candidate.DisplayName,
	)
	p.logger.Info("destination assigned",
		logging.String("file", candidate.DisplayName),
		logging.String("date", date.String()),
		logging.String("destination", destination),
	)
	return PlannedItem{
		Candidate:       candidate,
		Date:            date,
		DestinationPath: destination,
	}, true
}
