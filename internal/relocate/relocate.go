package relocate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"snapsort/internal/logging"
	"snapsort/internal/planner"
	"snapsort/internal/services"
)

// Mode selects the relocation action.
type Mode int

const (
	ModeMove Mode = iota
	ModeCopy
)

func (m Mode) String() string {
	if m == ModeCopy {
		return "copy"
	}
	return "move"
}

// ConflictPolicy selects behavior when the destination already exists.
type ConflictPolicy int

const (
	ConflictSkip ConflictPolicy = iota
	ConflictOverwrite
	ConflictRename
)

// Options configures a Relocator for the duration of a run.
type Options struct {
	Mode                Mode
	DryRun              bool
	OnConflict          ConflictPolicy
	CrossDeviceFallback bool
	VerifyCopies        bool
}

// Status classifies the result of one relocation attempt.
type Status int

const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome reports how a single planned item fared. Failures carry the wrapped
// error; skips carry a human-readable reason.
type Outcome struct {
	Status    Status
	Reason    string
	FinalPath string
	Err       error
}

// Relocator executes planned relocations one item at a time. Every failure is
// absorbed into the item's outcome; nothing it does can abort the run.
type Relocator struct {
	logger *slog.Logger
	opts   Options
}

// New constructs a relocator with the run's options.
func New(opts Options, logger *slog.Logger) *Relocator {
	return &Relocator{
		logger: logging.NewComponentLogger(logger, "relocator"),
		opts:   opts,
	}
}

// Relocate carries out one planned item: ensure the destination's parent
// directories exist, honor dry-run, apply the conflict policy, then copy or
// move the bytes.
func (r *Relocator) Relocate(item planner.PlannedItem) Outcome {
	dest := item.DestinationPath
	parent := filepath.Dir(dest)
	if parent == dest || parent == "." {
		err := services.Wrap(services.ErrPath, "relocating", "resolve parent", fmt.Sprintf("No parent directory for %s", dest), nil)
		return r.failed(item, err)
	}

	if err := os.MkdirAll(parent, 0o755); err != nil {
		wrapped := services.Wrap(services.ErrDirectoryCreate, "relocating", "create directories", fmt.Sprintf("Cannot create %s", parent), err)
		return r.failed(item, wrapped)
	}

	if r.opts.DryRun {
		r.logger.Info("dry-run, not relocating",
			logging.String("source", item.Candidate.SourcePath),
			logging.String("destination", dest),
			logging.String("mode", r.opts.Mode.String()),
		)
		return Outcome{Status: StatusSucceeded, FinalPath: dest, Reason: "dry-run"}
	}

	final, outcome := r.applyConflictPolicy(item, dest)
	if outcome != nil {
		return *outcome
	}

	var err error
	switch r.opts.Mode {
	case ModeCopy:
		err = r.copy(item.Candidate.SourcePath, final)
	default:
		err = r.move(item.Candidate.SourcePath, final)
	}
	if err != nil {
		wrapped := services.Wrap(services.ErrRelocation, "relocating", r.opts.Mode.String()+" file", fmt.Sprintf("%s -> %s", item.Candidate.SourcePath, final), err)
		return r.failed(item, wrapped)
	}

	r.logger.Info("item relocated",
		logging.String("source", item.Candidate.SourcePath),
		logging.String("destination", final),
		logging.String("mode", r.opts.Mode.String()),
	)
	return Outcome{Status: StatusSucceeded, FinalPath: final}
}

// applyConflictPolicy returns the path actually written plus a non-nil
// outcome when the policy decides the item without touching the filesystem.
func (r *Relocator) applyConflictPolicy(item planner.PlannedItem, dest string) (string, *Outcome) {
	if _, err := os.Stat(dest); err != nil {
		// Destination free; write straight to it.
		return dest, nil
	}

	switch r.opts.OnConflict {
	case ConflictOverwrite:
		return dest, nil
	case ConflictRename:
		renamed, err := nextAvailablePath(dest)
		if err != nil {
			wrapped := services.Wrap(services.ErrRelocation, "relocating", "allocate renamed destination", fmt.Sprintf("Cannot find a free name near %s", dest), err)
			outcome := r.failed(item, wrapped)
			return "", &outcome
		}
		r.logger.Info("destination exists, renaming",
			logging.String("destination", dest),
			logging.String("renamed", renamed),
		)
		return renamed, nil
	default:
		r.logger.Warn("destination exists, skipping item",
			logging.String("source", item.Candidate.SourcePath),
			logging.String("destination", dest),
		)
		return "", &Outcome{Status: StatusSkipped, Reason: "destination exists", FinalPath: dest}
	}
}

func (r *Relocator) move(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if r.opts.CrossDeviceFallback && errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		r.logger.Info("cross-device move, falling back to copy",
			logging.String("source", src),
			logging.String("destination", dest),
		)
		if copyErr := r.copy(src, dest); copyErr != nil {
			return copyErr
		}
		if removeErr := os.Remove(src); removeErr != nil {
			r.logger.Warn("failed to remove source after cross-device copy",
				logging.String("source", src),
				logging.Error(removeErr),
			)
		}
		return nil
	}
	return err
}

func (r *Relocator) copy(src, dest string) error {
	if r.opts.VerifyCopies {
		return copyFileVerified(src, dest)
	}
	return copyFile(src, dest)
}

func (r *Relocator) failed(item planner.PlannedItem, err error) Outcome {
	r.logger.Warn("relocation failed",
		logging.String("source", item.Candidate.SourcePath),
		logging.String("destination", item.DestinationPath),
		logging.Error(err),
	)
	return Outcome{Status: StatusFailed, Reason: err.Error(), Err: err}
}
