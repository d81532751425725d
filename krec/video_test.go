package krec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed, skipping")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed, skipping")
	}
}

// makeTestVideo renders a short synthetic clip with ffmpeg's lavfi source.
func makeTestVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "video.mkv")
	cmd := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=c=blue:s=64x64:d=1:r=10", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to render test video: %v, output: %s", err, out)
	}
	return path
}

func TestCombineMissingVideo(t *testing.T) {
	dir := t.TempDir()
	recPath := filepath.Join(dir, "rec.krec")
	if err := fullRecording().Save(recPath); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.mkv")

	err := CombineWithVideo(context.Background(), filepath.Join(dir, "missing.mp4"), recPath, outPath, "u", "t")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("failed combine must leave no output file")
	}
}

func TestCombineMissingRecording(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "video.mkv")
	if err := os.WriteFile(videoPath, []byte("fake"), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.mkv")

	err := CombineWithVideo(context.Background(), videoPath, filepath.Join(dir, "missing.krec"), outPath, "u", "t")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("failed combine must leave no output file")
	}
}

func TestCombineRejectsNonMatroskaOutput(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "video.mp4")
	recPath := filepath.Join(dir, "rec.krec")
	if err := os.WriteFile(videoPath, []byte("fake"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fullRecording().Save(recPath); err != nil {
		t.Fatal(err)
	}

	err := CombineWithVideo(context.Background(), videoPath, recPath, filepath.Join(dir, "out.mp4"), "u", "t")
	if !errors.Is(err, ErrCombine) {
		t.Errorf("expected ErrCombine for .mp4 output, got %v", err)
	}
}

func TestCombineAndExtractRoundTrip(t *testing.T) {
	requireFFmpeg(t)
	dir := t.TempDir()

	videoPath := makeTestVideo(t, dir)
	videoBefore, err := os.ReadFile(videoPath)
	if err != nil {
		t.Fatal(err)
	}

	recPath := filepath.Join(dir, "rec.krec")
	r := New(KRecHeader{UUID: "xyz", Task: "grasp"})
	r.AddFrame(KRecFrame{VideoTimestamp: 0, FrameNumber: 0})
	r.AddFrame(KRecFrame{VideoTimestamp: 33, FrameNumber: 1})
	if err := r.Save(recPath); err != nil {
		t.Fatal(err)
	}
	recBefore, err := os.ReadFile(recPath)
	if err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "combined.mkv")
	if err := CombineWithVideo(context.Background(), videoPath, recPath, outPath, "xyz", "grasp"); err != nil {
		t.Fatalf("combine failed: %v", err)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output artifact missing: %v", err)
	}

	// Inputs must be untouched.
	videoAfter, _ := os.ReadFile(videoPath)
	recAfter, _ := os.ReadFile(recPath)
	if !bytes.Equal(videoBefore, videoAfter) {
		t.Error("video input was modified by combine")
	}
	if !bytes.Equal(recBefore, recAfter) {
		t.Error("recording input was modified by combine")
	}

	// No stray temp files in the output directory.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".combine-") || strings.HasPrefix(e.Name(), ".extract-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}

	// Labels are readable back from the container.
	gotUUID, gotTask, err := ProbeLabels(context.Background(), outPath)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if gotUUID != "xyz" || gotTask != "grasp" {
		t.Errorf("expected labels xyz/grasp, got %s/%s", gotUUID, gotTask)
	}

	// Extraction returns the exact recording bytes.
	extracted := filepath.Join(dir, "extracted.krec")
	if err := ExtractRecording(context.Background(), outPath, extracted); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	extractedBytes, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(recBefore, extractedBytes) {
		t.Error("extracted recording differs from the original bytes")
	}

	loaded, err := Load(extracted)
	if err != nil {
		t.Fatalf("extracted recording does not load: %v", err)
	}
	if loaded.FrameCount() != 2 || loaded.Header().UUID != "xyz" {
		t.Errorf("extracted recording content mismatch: %s", loaded)
	}
}

func TestCombineKRecCleansIntermediate(t *testing.T) {
	requireFFmpeg(t)
	dir := t.TempDir()
	videoPath := makeTestVideo(t, dir)

	r := New(NewHeader("walk", "kbot", "s1"))
	r.AddFrame(KRecFrame{FrameNumber: 0})

	outPath := filepath.Join(dir, "combined.mkv")
	if err := CombineKRec(context.Background(), r, videoPath, outPath, "", ""); err != nil {
		t.Fatalf("combine failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.krec") {
			t.Errorf("intermediate recording not cleaned up: %s", e.Name())
		}
	}

	// Labels default to the recording header.
	gotUUID, gotTask, err := ProbeLabels(context.Background(), outPath)
	if err != nil {
		t.Fatal(err)
	}
	if gotUUID != r.Header().UUID || gotTask != "walk" {
		t.Errorf("expected header labels, got %s/%s", gotUUID, gotTask)
	}
}

func TestCombineKRecCleansIntermediateOnFailure(t *testing.T) {
	dir := t.TempDir()

	r := New(NewHeader("walk", "kbot", "s1"))
	err := CombineKRec(context.Background(), r, filepath.Join(dir, "missing.mp4"), filepath.Join(dir, "out.mkv"), "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("failure path left files behind: %v", names)
	}
}

func TestExtractMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := ExtractRecording(context.Background(), filepath.Join(dir, "missing.mkv"), filepath.Join(dir, "out.krec"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.krec")); !os.IsNotExist(statErr) {
		t.Error("failed extract must leave no output file")
	}
}
