package metadata

import (
	"os"

	"github.com/evanoberholster/imagemeta"

	"snapsort/internal/media"
)

// exifReader reads capture dates from embedded EXIF metadata. Corrupt or
// date-less files report no date rather than an error.
type exifReader struct{}

func (exifReader) ReadDate(path string) (media.CaptureDate, bool) {
	file, err := os.Open(path)
	if err != nil {
		return media.CaptureDate{}, false
	}
	defer file.Close()

	exif, err := imagemeta.Decode(file)
	if err != nil {
		return media.CaptureDate{}, false
	}

	if ts := exif.DateTimeOriginal(); !ts.IsZero() {
		return media.CaptureDateFromTime(ts), true
	}
	if ts := exif.CreateDate(); !ts.IsZero() {
		return media.CaptureDateFromTime(ts), true
	}
	return media.CaptureDate{}, false
}
