package media

import (
	"fmt"
	"time"
)

// Candidate is a discovered media file pending date resolution and placement.
type Candidate struct {
	// SourcePath is where the readable bytes live. For archive entries this
	// is a temporary extraction path.
	SourcePath string
	// DisplayName is the file name preserved in the destination. For archive
	// entries it is the original in-archive entry name, never the extraction
	// name.
	DisplayName string
}

// CaptureDate is the (year, month, day) a media file was originally created,
// per embedded metadata.
type CaptureDate struct {
	Year  int
	Month int
	Day   int
}

// CaptureDateFromTime truncates a timestamp to its calendar date.
func CaptureDateFromTime(t time.Time) CaptureDate {
	return CaptureDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d CaptureDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset.
func (d CaptureDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}
