package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"snapsort/internal/archive"
	"snapsort/internal/discovery"
	"snapsort/internal/logging"
	"snapsort/internal/media"
	"snapsort/internal/planner"
	"snapsort/internal/relocate"
	"snapsort/internal/services"
	"snapsort/internal/testsupport"
)

type fixedResolver map[string]media.CaptureDate

func (r fixedResolver) Resolve(c media.Candidate) (media.CaptureDate, bool) {
	date, ok := r[c.DisplayName]
	return date, ok
}

// newRunner assembles a runner with real components but a canned date
// resolver, since fixture files carry no usable metadata.
func newRunner(t *testing.T, run RunConfig, dates fixedResolver, opts relocate.Options) *Runner {
	t.Helper()
	logger := logging.NewNop()
	extractor := archive.NewExtractor(filepath.Join(t.TempDir(), "staging"), logger)
	return NewWithDependencies(
		run,
		logger,
		discovery.NewDiscoverer(extractor, logger),
		planner.New(run.Destination, dates, logger),
		relocate.New(opts, logger),
		nil,
	)
}

func TestRunCopiesDatedAndSkipsDateless(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("photo a"))
	testsupport.WriteFile(t, filepath.Join(src, "b.jpg"), []byte("photo b"))

	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeCopy}
	dates := fixedResolver{"a.jpg": {Year: 2023, Month: 5, Day: 4}}
	runner := newRunner(t, run, dates, relocate.Options{Mode: relocate.ModeCopy})

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Discovered != 2 || summary.Succeeded != 1 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	placed := filepath.Join(dest, "2023", "05", "04", "a.jpg")
	if got := testsupport.ReadFile(t, placed); string(got) != "photo a" {
		t.Fatalf("destination content %q", got)
	}
	if !testsupport.Exists(t, filepath.Join(src, "a.jpg")) {
		t.Fatal("copy mode must leave the source in place")
	}
	if !testsupport.Exists(t, filepath.Join(dest, "2023")) {
		t.Fatal("dated tree missing")
	}
}

func TestRunArchiveSourceKeepsOriginalNames(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "backup.zip")
	testsupport.MakeZip(t, archivePath, map[string][]byte{
		"sub/IMG_001.jpg": []byte("from archive"),
	})
	dest := filepath.Join(dir, "out")

	run := RunConfig{Source: archivePath, Destination: dest, Mode: relocate.ModeCopy}
	dates := fixedResolver{"IMG_001.jpg": {Year: 2021, Month: 1, Day: 9}}

	logger := logging.NewNop()
	stagingDir := filepath.Join(dir, "staging")
	extractor := archive.NewExtractor(stagingDir, logger)
	runner := NewWithDependencies(
		run,
		logger,
		discovery.NewDiscoverer(extractor, logger),
		planner.New(dest, dates, logger),
		relocate.New(relocate.Options{Mode: relocate.ModeCopy}, logger),
		nil,
	)

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	placed := filepath.Join(dest, "2021", "01", "09", "IMG_001.jpg")
	if got := testsupport.ReadFile(t, placed); string(got) != "from archive" {
		t.Fatalf("destination content %q", got)
	}

	// Extraction scratch space is cleaned up after the run.
	entries, err := filepath.Glob(filepath.Join(stagingDir, "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("staging not cleaned: %v", entries)
	}
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("photo"))

	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeMove, DryRun: true}
	dates := fixedResolver{"a.jpg": {Year: 2023, Month: 5, Day: 4}}
	runner := newRunner(t, run, dates, relocate.Options{Mode: relocate.ModeMove, DryRun: true})

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("dry-run should count simulated successes, got %+v", summary)
	}
	if !testsupport.Exists(t, filepath.Join(src, "a.jpg")) {
		t.Fatal("dry-run must not move the source")
	}
	if testsupport.Exists(t, filepath.Join(dest, "2023", "05", "04", "a.jpg")) {
		t.Fatal("dry-run must not create the destination file")
	}
}

func TestRunCopyModeIsIdempotentWithSkipPolicy(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("photo"))

	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeCopy}
	dates := fixedResolver{"a.jpg": {Year: 2023, Month: 5, Day: 4}}
	opts := relocate.Options{Mode: relocate.ModeCopy, OnConflict: relocate.ConflictSkip}

	first, err := newRunner(t, run, dates, opts).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Succeeded != 1 {
		t.Fatalf("first run %+v", first)
	}

	second, err := newRunner(t, run, dates, opts).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Succeeded != 0 || second.Skipped != 1 {
		t.Fatalf("second run should skip deterministically, got %+v", second)
	}
}

type flakyRelocator struct {
	failName  string
	attempted []string
}

func (f *flakyRelocator) Relocate(item planner.PlannedItem) relocate.Outcome {
	f.attempted = append(f.attempted, item.Candidate.DisplayName)
	if item.Candidate.DisplayName == f.failName {
		return relocate.Outcome{Status: relocate.StatusFailed, Reason: "synthetic failure"}
	}
	return relocate.Outcome{Status: relocate.StatusSucceeded, FinalPath: item.DestinationPath}
}

func TestRunFailureDoesNotStopRemainingItems(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "bad.jpg"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(src, "good.jpg"), []byte("y"))

	logger := logging.NewNop()
	extractor := archive.NewExtractor(filepath.Join(t.TempDir(), "staging"), logger)
	dates := fixedResolver{
		"bad.jpg":  {Year: 2023, Month: 1, Day: 1},
		"good.jpg": {Year: 2023, Month: 1, Day: 2},
	}
	relocator := &flakyRelocator{failName: "bad.jpg"}
	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeCopy}
	runner := NewWithDependencies(
		run,
		logger,
		discovery.NewDiscoverer(extractor, logger),
		planner.New(dest, dates, logger),
		relocator,
		nil,
	)

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(relocator.attempted) != 2 {
		t.Fatalf("both items must be attempted, got %v", relocator.attempted)
	}
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if total := summary.Succeeded + summary.Skipped + summary.Failed; total != summary.Discovered {
		t.Fatalf("outcome counts %d do not cover discovered %d", total, summary.Discovered)
	}
}

func TestRunMissingSourceIsRunFatal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	run := RunConfig{Source: filepath.Join(t.TempDir(), "absent"), Destination: dest, Mode: relocate.ModeCopy}
	runner := newRunner(t, run, fixedResolver{}, relocate.Options{})

	_, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected run-fatal error")
	}
	if !services.RunFatal(err) {
		t.Fatalf("missing source should be run fatal, got %v", err)
	}
}

func TestRunRefusesConcurrentWriters(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(dest, ".keep"), nil)

	holder := flock.New(filepath.Join(dest, ".snapsort.lock"))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not pre-acquire lock: %v", err)
	}
	defer holder.Unlock()

	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeCopy}
	runner := newRunner(t, run, fixedResolver{}, relocate.Options{})

	_, err = runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected lock contention error")
	}
	if !services.RunFatal(err) {
		t.Fatalf("lock contention should be run fatal, got %v", err)
	}
}

type countingProgress struct {
	total int
	ticks int
	ended bool
}

func (c *countingProgress) Begin(total int) { c.total = total }
func (c *countingProgress) Tick(string)     { c.ticks++ }
func (c *countingProgress) End()            { c.ended = true }

func TestRunTicksOncePerCandidate(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("a"))
	testsupport.WriteFile(t, filepath.Join(src, "b.jpg"), []byte("b"))
	testsupport.WriteFile(t, filepath.Join(src, "c.jpg"), []byte("c"))

	logger := logging.NewNop()
	extractor := archive.NewExtractor(filepath.Join(t.TempDir(), "staging"), logger)
	dates := fixedResolver{"a.jpg": {Year: 2023, Month: 5, Day: 4}}
	progress := &countingProgress{}
	run := RunConfig{Source: src, Destination: dest, Mode: relocate.ModeCopy}
	runner := NewWithDependencies(
		run,
		logger,
		discovery.NewDiscoverer(extractor, logger),
		planner.New(dest, dates, logger),
		relocate.New(relocate.Options{Mode: relocate.ModeCopy}, logger),
		progress,
	)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if progress.total != 3 || progress.ticks != 3 || !progress.ended {
		t.Fatalf("unexpected progress %+v", progress)
	}
}
