package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Organize.Mode != "move" {
		t.Fatalf("unexpected default mode %q", cfg.Organize.Mode)
	}
	if cfg.Organize.OnConflict != "skip" {
		t.Fatalf("unexpected default conflict policy %q", cfg.Organize.OnConflict)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected level %q", cfg.Logging.Level)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
library_dir = "` + filepath.Join(dir, "library") + `"
staging_dir = "` + filepath.Join(dir, "staging") + `"

[organize]
mode = "Copy"
on_conflict = "RENAME"
image_extensions = ["JPG", ".png"]

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Organize.Mode != "copy" {
		t.Fatalf("mode not normalized: %q", cfg.Organize.Mode)
	}
	if cfg.Organize.OnConflict != "rename" {
		t.Fatalf("conflict policy not normalized: %q", cfg.Organize.OnConflict)
	}
	if got := cfg.Organize.ImageExtensions; len(got) != 2 || got[0] != ".jpg" || got[1] != ".png" {
		t.Fatalf("extensions not normalized: %v", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\nmode = \"shuffle\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "organize.mode") {
		t.Fatalf("expected mode validation error, got %v", err)
	}
}

func TestLoadRejectsBadConflictPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\non_conflict = \"ask\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "organize.on_conflict") {
		t.Fatalf("expected conflict validation error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/library")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "library") {
		t.Fatalf("unexpected expansion %q", got)
	}
}
