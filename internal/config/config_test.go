package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("expected defaults %+v, got %+v", def, cfg)
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kclip.yaml")
	want := Config{
		VideoDir:    "/data/video",
		OutputDir:   "/data/out",
		DefaultTask: "teleop",
	}

	if err := Write(want, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip mismatch: %+v != %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kclip.yaml")
	if err := os.WriteFile(path, []byte("default_task: walk\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultTask != "walk" {
		t.Errorf("expected default_task walk, got %q", cfg.DefaultTask)
	}
	if cfg.VideoDir != Default().VideoDir {
		t.Errorf("unset keys should keep defaults, got %q", cfg.VideoDir)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kclip.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
