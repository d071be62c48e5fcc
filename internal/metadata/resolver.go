package metadata

import (
	"log/slog"

	"snapsort/internal/logging"
	"snapsort/internal/media"
)

// DateReader extracts a capture date from one kind of media file. A false
// return means the file has no usable embedded date; that is an expected
// outcome, not an error.
type DateReader interface {
	ReadDate(path string) (media.CaptureDate, bool)
}

// Resolver dispatches candidates to the reader for their media kind. It never
// mutates the inspected file.
type Resolver struct {
	logger *slog.Logger
	kinds  *media.KindSet
	image  DateReader
	video  DateReader
}

// NewResolver constructs a resolver with the default EXIF and ISO BMFF readers.
func NewResolver(kinds *media.KindSet, logger *slog.Logger) *Resolver {
	return NewResolverWithReaders(kinds, logger, exifReader{}, mvhdReader{})
}

// NewResolverWithReaders allows injecting readers (used in tests).
func NewResolverWithReaders(kinds *media.KindSet, logger *slog.Logger, image, video DateReader) *Resolver {
	if kinds == nil {
		kinds = media.DefaultKindSet()
	}
	return &Resolver{
		logger: logging.NewComponentLogger(logger, "metadata"),
		kinds:  kinds,
		image:  image,
		video:  video,
	}
}

// Resolve returns the candidate's capture date when one can be read. Kind
// detection uses the display name so archive entries keep their original
// extension even when the extraction path has a synthetic one.
func (r *Resolver) Resolve(candidate media.Candidate) (media.CaptureDate, bool) {
	kind := r.kinds.KindOf(candidate.DisplayName)
	switch kind {
	case media.KindImage:
		return r.image.ReadDate(candidate.SourcePath)
	case media.KindVideo:
		return r.video.ReadDate(candidate.SourcePath)
	default:
		r.logger.Debug("unsupported media kind",
			logging.String("file", candidate.DisplayName),
			logging.String("kind", kind.String()),
		)
		return media.CaptureDate{}, false
	}
}
