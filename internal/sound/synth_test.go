package sound

import (
	"math/rand/v2"
	"testing"
	"time"
)

func newTestSynth() *Synth {
	return NewSynth(rand.New(rand.NewPCG(1, 2)))
}

func TestPopLengthAndLevel(t *testing.T) {
	clip := Render(newTestSynth().Pop())

	if got := clip.Duration(); got < 149*time.Millisecond || got > 151*time.Millisecond {
		t.Fatalf("expected a 150ms pop, got %v", got)
	}
	peak := clip.Peak()
	if peak <= 0.2 || peak > 1 {
		t.Fatalf("expected audible unclipped peak, got %v", peak)
	}
}

func TestBurstPopLength(t *testing.T) {
	clip := Render(newTestSynth().BurstPop())

	if got := clip.Duration(); got < 119*time.Millisecond || got > 121*time.Millisecond {
		t.Fatalf("expected a 120ms burst pop, got %v", got)
	}
	if peak := clip.Peak(); peak <= 0.1 || peak > 0.7 {
		t.Fatalf("expected peak at most 0.7, got %v", peak)
	}
}

func TestPopFadesOut(t *testing.T) {
	clip := Render(newTestSynth().Pop())

	tail := Clip{pcm: clip.pcm[len(clip.pcm)-400:]}
	if peak := tail.Peak(); peak > 0.01 {
		t.Fatalf("expected the pop to decay to near silence, tail peak %v", peak)
	}
}

func TestDecayEnvelope(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		want float64
	}{
		{"start", 0, 0},
		{"mid attack", 5, 0.5},
		{"attack end", 10, 1},
		{"end", 110, silenceFloor},
	}
	for _, tt := range tests {
		if got := decayEnvelope(tt.pos, 10, 110, 1); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestToneGlidesPitch(t *testing.T) {
	tone := newTone(waveSine, []glide{
		{0, 600},
		{40 * time.Millisecond, 1200},
		{120 * time.Millisecond, 300},
	}, 1, 0, 150*time.Millisecond)

	if f := tone.freqAt(0); f != 600 {
		t.Fatalf("expected 600Hz at start, got %v", f)
	}
	if f := tone.freqAt(sampleRate.N(40 * time.Millisecond)); f < 1190 || f > 1200 {
		t.Fatalf("expected ~1200Hz at 40ms, got %v", f)
	}
	if f := tone.freqAt(sampleRate.N(140 * time.Millisecond)); f != 300 {
		t.Fatalf("expected 300Hz after the last keyframe, got %v", f)
	}
}

func TestWithGainSilent(t *testing.T) {
	clip := Render(withGain(newTestSynth().BurstPop(), 0))
	if clip.Peak() != 0 {
		t.Fatalf("expected silence, got peak %v", clip.Peak())
	}
	if clip.Duration() == 0 {
		t.Fatal("expected silent clip to keep its length")
	}
}
