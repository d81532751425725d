package system

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestVideoPicksNewest(t *testing.T) {
	dir := t.TempDir()

	files := []string{"old.mp4", "mid.mkv", "new.mov", "notes.txt"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i-len(files)) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatestVideo(dir)
	if err != nil {
		t.Fatalf("FindLatestVideo failed: %v", err)
	}
	if filepath.Base(latest) != "new.mov" {
		t.Errorf("expected new.mov, got %s", latest)
	}
}

func TestFindLatestVideoEmptyDir(t *testing.T) {
	if _, err := FindLatestVideo(t.TempDir()); err == nil {
		t.Error("expected error for directory without videos")
	}
}

func TestEnsureFreeSpace(t *testing.T) {
	dir := t.TempDir()

	if err := EnsureFreeSpace(dir, 1); err != nil {
		t.Errorf("one byte should always fit: %v", err)
	}
	if err := EnsureFreeSpace(dir, math.MaxUint64); err == nil {
		t.Error("expected error for absurd space requirement")
	}
}
