package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"snapsort/internal/logging"
	"snapsort/internal/media"
)

type stubReader struct {
	date  media.CaptureDate
	ok    bool
	calls int
}

func (s *stubReader) ReadDate(string) (media.CaptureDate, bool) {
	s.calls++
	return s.date, s.ok
}

func TestResolverDispatchesByKind(t *testing.T) {
	image := &stubReader{date: media.CaptureDate{Year: 2023, Month: 5, Day: 4}, ok: true}
	video := &stubReader{date: media.CaptureDate{Year: 2021, Month: 1, Day: 9}, ok: true}
	resolver := NewResolverWithReaders(nil, logging.NewNop(), image, video)

	date, ok := resolver.Resolve(media.Candidate{SourcePath: "/tmp/x", DisplayName: "a.jpg"})
	if !ok || date != image.date {
		t.Fatalf("image dispatch failed: %v %v", date, ok)
	}
	date, ok = resolver.Resolve(media.Candidate{SourcePath: "/tmp/y", DisplayName: "b.mov"})
	if !ok || date != video.date {
		t.Fatalf("video dispatch failed: %v %v", date, ok)
	}
	if image.calls != 1 || video.calls != 1 {
		t.Fatalf("unexpected reader calls: image=%d video=%d", image.calls, video.calls)
	}
}

func TestResolverUsesDisplayNameForKind(t *testing.T) {
	image := &stubReader{ok: true, date: media.CaptureDate{Year: 2020, Month: 2, Day: 2}}
	video := &stubReader{}
	resolver := NewResolverWithReaders(nil, logging.NewNop(), image, video)

	// Archive extractions carry synthetic source names; the original entry
	// name decides the kind.
	_, ok := resolver.Resolve(media.Candidate{SourcePath: "/tmp/000001.bin", DisplayName: "IMG_001.jpg"})
	if !ok {
		t.Fatal("expected image reader to be used")
	}
	if video.calls != 0 {
		t.Fatal("video reader should not have been consulted")
	}
}

func TestResolverUnknownKind(t *testing.T) {
	image := &stubReader{ok: true}
	video := &stubReader{ok: true}
	resolver := NewResolverWithReaders(nil, logging.NewNop(), image, video)

	_, ok := resolver.Resolve(media.Candidate{SourcePath: "/tmp/z", DisplayName: "notes.txt"})
	if ok {
		t.Fatal("unknown kind must resolve to no date")
	}
	if image.calls != 0 || video.calls != 0 {
		t.Fatal("no reader should run for unknown kinds")
	}
}

func TestExifReaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := (exifReader{}).ReadDate(path); ok {
		t.Fatal("garbage file should produce no date")
	}
}

func TestExifReaderMissingFile(t *testing.T) {
	if _, ok := (exifReader{}).ReadDate(filepath.Join(t.TempDir(), "missing.jpg")); ok {
		t.Fatal("missing file should produce no date")
	}
}

func TestMvhdReaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp4")
	if err := os.WriteFile(path, []byte("not a container"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := (mvhdReader{}).ReadDate(path); ok {
		t.Fatal("garbage file should produce no date")
	}
}
