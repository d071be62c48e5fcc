package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"snapsort/internal/archive"
	"snapsort/internal/logging"
	"snapsort/internal/media"
	"snapsort/internal/services"
)

// Result carries the discovered candidates plus the temporary extraction
// directory when the source was an archive (empty otherwise). The caller owns
// cleanup of the staging directory once relocation has finished.
type Result struct {
	Candidates []media.Candidate
	StagingDir string
}

// Discoverer enumerates the candidate set for a source location.
type Discoverer struct {
	logger    *slog.Logger
	extractor *archive.Extractor
}

// NewDiscoverer wires discovery with its archive collaborator.
func NewDiscoverer(extractor *archive.Extractor, logger *slog.Logger) *Discoverer {
	return &Discoverer{
		logger:    logging.NewComponentLogger(logger, "discovery"),
		extractor: extractor,
	}
}

// Discover produces every candidate under the source, which may be a
// directory tree or a zip archive. A missing or unreadable source root is
// run-fatal; unreadable entries below it are skipped with a warning.
func (d *Discoverer) Discover(source string) (Result, error) {
	info, err := os.Stat(source)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDiscovery, "discovering", "stat source", fmt.Sprintf("Source %s does not exist or is unreadable", source), err)
	}

	if !info.IsDir() {
		if archive.IsArchive(source) {
			return d.discoverArchive(source)
		}
		return Result{}, services.Wrap(services.ErrDiscovery, "discovering", "classify source", fmt.Sprintf("Source %s is neither a directory nor a supported archive", source), nil)
	}

	candidates, err := d.walk(source)
	if err != nil {
		return Result{}, err
	}
	d.logger.Info("discovery completed",
		logging.String("source", source),
		logging.Int("candidates", len(candidates)),
	)
	return Result{Candidates: candidates}, nil
}

func (d *Discoverer) discoverArchive(source string) (Result, error) {
	entries, sessionDir, err := d.extractor.Extract(source)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDiscovery, "discovering", "extract archive", fmt.Sprintf("Cannot discover archive %s", source), err)
	}
	candidates := make([]media.Candidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, media.Candidate{
			SourcePath:  entry.TempPath,
			DisplayName: entry.Name,
		})
	}
	d.logger.Info("discovery completed",
		logging.String("source", source),
		logging.Int("candidates", len(candidates)),
	)
	return Result{Candidates: candidates, StagingDir: sessionDir}, nil
}

func (d *Discoverer) walk(root string) ([]media.Candidate, error) {
	var candidates []media.Candidate
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			d.logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(walkErr),
			)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		candidates = append(candidates, media.Candidate{
			SourcePath:  path,
			DisplayName: entry.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrDiscovery, "discovering", "walk source", fmt.Sprintf("Cannot enumerate %s", root), err)
	}
	return candidates, nil
}
