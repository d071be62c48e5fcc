package metadata

import (
	"os"
	"time"

	mp4 "github.com/abema/go-mp4"

	"snapsort/internal/media"
)

// appleEpochOffset is the number of seconds between the Apple/Mac epoch
// (1904-01-01 00:00:00 UTC) and the Unix epoch (1970-01-01 00:00:00 UTC).
// ISO BMFF creation times count from the former.
const appleEpochOffset = 2082844800

// mvhdReader reads creation times from the moov/mvhd box of ISO BMFF
// containers (mp4, mov, m4v, 3gp).
type mvhdReader struct{}

func (mvhdReader) ReadDate(path string) (media.CaptureDate, bool) {
	file, err := os.Open(path)
	if err != nil {
		return media.CaptureDate{}, false
	}
	defer file.Close()

	boxes, err := mp4.ExtractBoxesWithPayload(file, nil, []mp4.BoxPath{
		{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()},
	})
	if err != nil {
		return media.CaptureDate{}, false
	}

	for _, box := range boxes {
		mvhd, ok := box.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		creation := mvhd.GetCreationTime()
		if creation == 0 {
			continue
		}
		ts := time.Unix(int64(creation)-appleEpochOffset, 0).UTC()
		// Cameras that never set the field leave epoch garbage behind.
		if ts.Year() < 1970 {
			continue
		}
		return media.CaptureDateFromTime(ts), true
	}
	return media.CaptureDate{}, false
}
