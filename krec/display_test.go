package krec

import (
	"strings"
	"testing"
)

func TestDisplayContainsSummary(t *testing.T) {
	r := fullRecording()
	out := r.Display()

	for _, want := range []string{
		"Task: pick_and_place",
		"UUID: 11111111-2222-3333-4444-555555555555",
		"Robot Platform: kbot-v1",
		"Actuator Configs (2)",
		"left_knee",
		"Frames (2)",
		"Has actuator commands: yes",
		"Has IMU values: yes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("display output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayAbsentFieldsShownAsNone(t *testing.T) {
	r := fullRecording()
	out, err := r.DisplayFrame(0)
	if err != nil {
		t.Fatal(err)
	}

	// Actuator 2 has everything optional absent.
	if !strings.Contains(out, "ID 2: online=false, pos=none, vel=none") {
		t.Errorf("absent fields should render as none:\n%s", out)
	}
	// Actuator 1 has present values.
	if !strings.Contains(out, "ID 1: online=true, pos=0.5") {
		t.Errorf("present fields should render their value:\n%s", out)
	}
}

func TestDisplayFrameOutOfRange(t *testing.T) {
	r := fullRecording()

	if _, err := r.DisplayFrame(2); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := r.DisplayFrame(-1); err == nil {
		t.Error("expected error for negative index")
	}
}
