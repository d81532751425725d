package krec

import (
	"strings"
	"testing"
)

func TestNewHeaderGeneratesUUID(t *testing.T) {
	h1 := NewHeader("walk", "kbot", "serial-1")
	h2 := NewHeader("walk", "kbot", "serial-1")

	if h1.UUID == "" {
		t.Fatal("expected generated uuid, got empty string")
	}
	if h1.UUID == h2.UUID {
		t.Errorf("expected unique uuids, got %s twice", h1.UUID)
	}
	if h1.Task != "walk" || h1.RobotPlatform != "kbot" || h1.RobotSerial != "serial-1" {
		t.Errorf("header fields not set: %+v", h1)
	}
}

func TestIdentityQuaternion(t *testing.T) {
	q := IdentityQuaternion()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("identity should be (0,0,0,1), got %+v", q)
	}
}

func TestAddFramePreservesOrder(t *testing.T) {
	r := New(NewHeader("walk", "kbot", "s1"))

	for i := 0; i < 100; i++ {
		r.AddFrame(KRecFrame{
			VideoTimestamp: uint64(i * 33),
			FrameNumber:    uint64(i),
			InferenceStep:  uint64(i),
		})
	}

	if r.FrameCount() != 100 {
		t.Fatalf("expected 100 frames, got %d", r.FrameCount())
	}
	for i, f := range r.Frames() {
		if f.FrameNumber != uint64(i) {
			t.Fatalf("frame %d: expected frame_number %d, got %d", i, i, f.FrameNumber)
		}
	}
}

func TestHeaderAccessorsAndReplace(t *testing.T) {
	h := NewHeader("walk", "kbot", "s1")
	r := New(h)

	if r.Header().UUID != h.UUID {
		t.Errorf("Header() should expose the constructed header")
	}

	h2 := NewHeader("grasp", "kbot", "s2")
	r.SetHeader(h2)
	if r.Header().Task != "grasp" {
		t.Errorf("SetHeader should replace the header wholesale")
	}
}

func TestFrameHelpers(t *testing.T) {
	var f KRecFrame
	if f.HasActuatorCommands() || f.HasImuValues() {
		t.Error("empty frame should have no commands and no imu")
	}

	f.AddActuatorState(ActuatorState{ActuatorID: 1, Online: true})
	f.AddActuatorState(ActuatorState{ActuatorID: 2})
	if len(f.ActuatorStates) != 2 {
		t.Fatalf("expected 2 states, got %d", len(f.ActuatorStates))
	}

	f.ActuatorCommands = &ActuatorCommand{ActuatorID: 1, Position: 0.5}
	f.ImuValues = &ImuValues{Accel: &Vec3{X: 9.8}}
	if !f.HasActuatorCommands() || !f.HasImuValues() {
		t.Error("helpers should report presence")
	}
}

func TestStringSummary(t *testing.T) {
	h := NewHeader("walk", "kbot", "s1")
	r := New(h)
	r.AddFrame(KRecFrame{})

	s := r.String()
	if !strings.Contains(s, "frames=1") || !strings.Contains(s, h.UUID) {
		t.Errorf("summary missing fields: %s", s)
	}
}
