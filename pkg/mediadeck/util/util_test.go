package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatMinSec(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0:00"},
		{time.Second, "0:01"},
		{59 * time.Second, "0:59"},
		{time.Minute, "1:00"},
		{5 * time.Minute, "5:00"},
		{4*time.Minute + 59*time.Second, "4:59"},
		{61 * time.Minute, "61:00"},
		{-3 * time.Second, "0:00"},
		{1500 * time.Millisecond, "0:02"},
	}

	for _, tt := range tests {
		if got := FormatMinSec(tt.duration); got != tt.want {
			t.Errorf("FormatMinSec(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestEnsureDirExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir")

	if err := EnsureDirExists(path); err != nil {
		t.Fatalf("EnsureDirExists failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s, got info %v err %v", path, info, err)
	}

	// Idempotent on an existing directory.
	if err := EnsureDirExists(path); err != nil {
		t.Errorf("EnsureDirExists on existing dir failed: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("expected missing file to report false")
	}

	if FileExists(dir) {
		t.Error("expected directory to report false")
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("expected existing file to report true")
	}
}
