package sound

import (
	"path/filepath"
	"testing"
	"time"
)

func TestEngineDisabledIsSilent(t *testing.T) {
	e, err := New(Options{Enabled: false, Volume: 0.15}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	e.Pop()
	e.BurstPop()

	if e.Enabled() {
		t.Fatal("expected engine to stay disabled")
	}
	if e.otoCtx != nil || len(e.players) != 0 {
		t.Fatal("expected no audio device to be opened while disabled")
	}
}

func TestEngineToggle(t *testing.T) {
	e, err := New(Options{Enabled: true}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Toggle() {
		t.Fatal("expected first toggle to disable sound")
	}
	if !e.Toggle() {
		t.Fatal("expected second toggle to enable sound")
	}
}

func TestEngineLoadsCustomClips(t *testing.T) {
	path := writeTestWAV(t, 44100, 100*time.Millisecond)

	e, err := New(Options{PopFile: path}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.pop == nil {
		t.Fatal("expected pop clip to be loaded")
	}
	if e.burst != nil {
		t.Fatal("expected synthesized burst pop")
	}
	if got := e.pop.Duration(); got < 99*time.Millisecond || got > 101*time.Millisecond {
		t.Fatalf("expected 100ms clip, got %v", got)
	}
}

func TestEngineRejectsBadClip(t *testing.T) {
	_, err := New(Options{BurstFile: filepath.Join(t.TempDir(), "nope.ogg")}, nil)
	if err == nil {
		t.Fatal("expected error for missing clip")
	}
}
