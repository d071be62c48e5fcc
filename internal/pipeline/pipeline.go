package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"snapsort/internal/archive"
	"snapsort/internal/config"
	"snapsort/internal/discovery"
	"snapsort/internal/logging"
	"snapsort/internal/media"
	"snapsort/internal/metadata"
	"snapsort/internal/planner"
	"snapsort/internal/relocate"
	"snapsort/internal/services"
)

// lockFileName is the advisory lock placed in the destination root to enforce
// the single-writer assumption.
const lockFileName = ".snapsort.lock"

// RunConfig is the per-run input supplied by the shell layer. It is immutable
// for the duration of a run.
type RunConfig struct {
	Source      string
	Destination string
	Mode        relocate.Mode
	DryRun      bool
}

// Summary aggregates per-item outcomes for the whole run. The counts satisfy
// Succeeded+Skipped+Failed == Discovered.
type Summary struct {
	Discovered int
	Planned    int
	Succeeded  int
	Skipped    int
	Failed     int
}

// Discoverer enumerates candidates for a source location.
type Discoverer interface {
	Discover(source string) (discovery.Result, error)
}

// Planner assigns destinations to candidates.
type Planner interface {
	Plan(candidate media.Candidate) (planner.PlannedItem, bool)
}

// Relocator executes one planned item.
type Relocator interface {
	Relocate(item planner.PlannedItem) relocate.Outcome
}

// Runner drives the pipeline through its phases: Discovering, Planning,
// Relocating, Summarized. One linear pass, no backward transitions, no
// retries. The candidate set is drained into memory before planning begins;
// that batch boundary is the stated scaling limit of a personal media
// collection.
type Runner struct {
	run        RunConfig
	logger     *slog.Logger
	discoverer Discoverer
	planner    Planner
	relocator  Relocator
	progress   ProgressSink
}

// New wires a runner from configuration, building the default component
// stack.
func New(cfg *config.Config, run RunConfig, logger *slog.Logger, progress ProgressSink) *Runner {
	kinds := media.NewKindSet(cfg.Organize.ImageExtensions, cfg.Organize.VideoExtensions)
	resolver := metadata.NewResolver(kinds, logger)
	extractor := archive.NewExtractor(cfg.Paths.StagingDir, logger)

	opts := relocate.Options{
		Mode:                run.Mode,
		DryRun:              run.DryRun,
		OnConflict:          conflictPolicy(cfg.Organize.OnConflict),
		CrossDeviceFallback: cfg.Organize.CrossDeviceFallback,
		VerifyCopies:        cfg.Organize.VerifyCopies,
	}

	return NewWithDependencies(
		run,
		logger,
		discovery.NewDiscoverer(extractor, logger),
		planner.New(run.Destination, resolver, logger),
		relocate.New(opts, logger),
		progress,
	)
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(run RunConfig, logger *slog.Logger, d Discoverer, p Planner, r Relocator, progress ProgressSink) *Runner {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Runner{
		run:        run,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		discoverer: d,
		planner:    p,
		relocator:  r,
		progress:   progress,
	}
}

// Run executes the full pipeline and returns the aggregated summary. The
// returned error is non-nil only for run-level fatals (bad source root, lock
// contention); individual item failures are absorbed into the summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if !r.run.DryRun {
		unlock, err := r.acquireRunLock()
		if err != nil {
			return Summary{}, err
		}
		defer unlock()
	}

	// Discovering.
	discoverCtx := services.WithPhase(ctx, "discovering")
	logging.WithContext(discoverCtx, r.logger).Info("discovering candidates",
		logging.String("source", r.run.Source),
	)
	result, err := r.discoverer.Discover(r.run.Source)
	if err != nil {
		return Summary{}, err
	}
	if result.StagingDir != "" {
		defer func() {
			if err := os.RemoveAll(result.StagingDir); err != nil {
				r.logger.Warn("failed to clean staging directory",
					logging.String("staging_dir", result.StagingDir),
					logging.Error(err),
				)
			}
		}()
	}

	summary := Summary{Discovered: len(result.Candidates)}

	// Planning.
	planCtx := services.WithPhase(ctx, "planning")
	logging.WithContext(planCtx, r.logger).Info("planning destinations",
		logging.Int("candidates", summary.Discovered),
	)
	planned := make([]planner.PlannedItem, 0, len(result.Candidates))
	var unplannable []media.Candidate
	for _, candidate := range result.Candidates {
		item, ok := r.planner.Plan(candidate)
		if !ok {
			unplannable = append(unplannable, candidate)
			continue
		}
		planned = append(planned, item)
	}
	summary.Planned = len(planned)
	summary.Skipped += len(unplannable)

	// Relocating. One progress tick per discovered candidate regardless of
	// outcome so the bar always reaches its total.
	relocateCtx := services.WithPhase(ctx, "relocating")
	relocateLogger := logging.WithContext(relocateCtx, r.logger)
	relocateLogger.Info("relocating items",
		logging.Int("planned", summary.Planned),
		logging.String("mode", r.run.Mode.String()),
		logging.Bool("dry_run", r.run.DryRun),
	)
	r.progress.Begin(summary.Discovered)
	for _, candidate := range unplannable {
		r.progress.Tick(candidate.DisplayName)
	}
	for _, item := range planned {
		outcome := r.relocator.Relocate(item)
		switch outcome.Status {
		case relocate.StatusSucceeded:
			summary.Succeeded++
		case relocate.StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		r.progress.Tick(item.Candidate.DisplayName)
	}
	r.progress.End()

	// Summarized.
	logging.WithContext(services.WithPhase(ctx, "summarized"), r.logger).Info("run completed",
		logging.Int("discovered", summary.Discovered),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

// acquireRunLock takes the advisory destination lock, creating the
// destination root if needed. Contention is a run-fatal configuration error:
// concurrent writers to one library tree are not supported.
func (r *Runner) acquireRunLock() (func(), error) {
	if err := os.MkdirAll(r.run.Destination, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "start", "create destination root", fmt.Sprintf("Cannot create %s", r.run.Destination), err)
	}
	lock := flock.New(filepath.Join(r.run.Destination, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "start", "acquire run lock", "Cannot acquire destination lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "start", "acquire run lock", fmt.Sprintf("Another run is writing to %s", r.run.Destination), nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}, nil
}

func conflictPolicy(name string) relocate.ConflictPolicy {
	switch name {
	case "overwrite":
		return relocate.ConflictOverwrite
	case "rename":
		return relocate.ConflictRename
	default:
		return relocate.ConflictSkip
	}
}
