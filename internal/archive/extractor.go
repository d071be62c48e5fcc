package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"snapsort/internal/logging"
	"snapsort/internal/services"
)

// Entry pairs an extracted temporary file with the original in-archive name
// that must survive into the destination layout.
type Entry struct {
	TempPath string
	Name     string
}

// IsArchive reports whether the path looks like a supported archive.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Extractor unpacks archives into per-run staging directories.
type Extractor struct {
	stagingDir string
	logger     *slog.Logger
}

// NewExtractor constructs an extractor rooted at the configured staging directory.
func NewExtractor(stagingDir string, logger *slog.Logger) *Extractor {
	return &Extractor{
		stagingDir: stagingDir,
		logger:     logging.NewComponentLogger(logger, "archive"),
	}
}

// Extract unpacks every file entry of the archive into a fresh session
// directory and returns the entries plus the session directory, which the
// caller removes when the run completes. Unreadable entries are skipped with
// a warning; only failure to open the archive itself is an error.
func (e *Extractor) Extract(archivePath string) ([]Entry, string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, "", services.Wrap(services.ErrArchive, "discovering", "open archive", fmt.Sprintf("Cannot read archive %s", archivePath), err)
	}
	defer reader.Close()

	sessionDir := filepath.Join(e.stagingDir, uuid.NewString())
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, "", services.Wrap(services.ErrArchive, "discovering", "create staging dir", "Cannot create extraction directory", err)
	}

	entries := make([]Entry, 0, len(reader.File))
	for i, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		// The internal directory structure is discarded; only the entry's
		// base name is preserved for placement.
		name := path.Base(file.Name)
		tempPath := filepath.Join(sessionDir, fmt.Sprintf("%06d%s", i, filepath.Ext(name)))
		if err := e.extractEntry(file, tempPath); err != nil {
			e.logger.Warn("skipping unreadable archive entry",
				logging.String("archive", archivePath),
				logging.String("entry", file.Name),
				logging.Error(err),
			)
			continue
		}
		entries = append(entries, Entry{TempPath: tempPath, Name: name})
	}

	e.logger.Info("archive extracted",
		logging.String("archive", archivePath),
		logging.Int("entries", len(entries)),
	)
	return entries, sessionDir, nil
}

func (e *Extractor) extractEntry(file *zip.File, tempPath string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
