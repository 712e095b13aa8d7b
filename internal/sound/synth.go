package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	sampleRate   = beep.SampleRate(44100)
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes

	silenceFloor = 0.001
)

type waveform uint8

const (
	waveSine waveform = iota
	waveTriangle
)

// glide is a frequency keyframe; frequencies ramp exponentially between them.
type glide struct {
	at   time.Duration
	freq float64
}

// tone is an oscillator with a gliding pitch, a linear attack and an
// exponential decay down to silence at its end.
type tone struct {
	wave   waveform
	glides []glide
	peak   float64
	attack int
	total  int
	pos    int
	phase  float64
}

func newTone(wave waveform, glides []glide, peak float64, attack, length time.Duration) *tone {
	return &tone{
		wave:   wave,
		glides: glides,
		peak:   peak,
		attack: sampleRate.N(attack),
		total:  sampleRate.N(length),
	}
}

func (t *tone) freqAt(pos int) float64 {
	at := sampleRate.D(pos)
	for i := 1; i < len(t.glides); i++ {
		a, b := t.glides[i-1], t.glides[i]
		if at <= b.at {
			frac := float64(at-a.at) / float64(b.at-a.at)
			return a.freq * math.Pow(b.freq/a.freq, frac)
		}
	}
	return t.glides[len(t.glides)-1].freq
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case waveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= decayEnvelope(t.pos, t.attack, t.total, t.peak)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freqAt(t.pos) / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decayEnvelope rises linearly to peak over attack samples, then falls
// exponentially to the silence floor at total.
func decayEnvelope(pos, attack, total int, peak float64) float64 {
	if pos < attack {
		return peak * float64(pos) / float64(attack)
	}
	if total <= attack {
		return 0
	}
	frac := float64(pos-attack) / float64(total-attack)
	return peak * math.Pow(silenceFloor/peak, frac)
}

// bandNoise is white noise through a band-pass biquad, with a decaying gain.
type bandNoise struct {
	rng   *rand.Rand
	total int
	pos   int

	b0, b2, a1, a2 float64
	x1, x2, y1, y2 float64
}

func newBandNoise(rng *rand.Rand, center, q float64, length time.Duration) *bandNoise {
	w0 := 2 * math.Pi * center / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return &bandNoise{
		rng:   rng,
		total: sampleRate.N(length),
		b0:    alpha / a0,
		b2:    -alpha / a0,
		a1:    -2 * math.Cos(w0) / a0,
		a2:    (1 - alpha) / a0,
	}
}

func (b *bandNoise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		x := (b.rng.Float64()*2 - 1) * 0.5
		y := b.b0*x + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
		b.x2, b.x1 = b.x1, x
		b.y2, b.y1 = b.y1, y

		y *= decayEnvelope(b.pos, 0, b.total, 1)
		samples[i][0] = y
		samples[i][1] = y
		b.pos++
	}
	return len(samples), true
}

func (b *bandNoise) Err() error { return nil }

// Synth builds the reaction sounds. Each call returns a fresh streamer.
type Synth struct {
	rng *rand.Rand
}

// NewSynth creates a Synth drawing noise and pitch jitter from rng.
func NewSynth(rng *rand.Rand) *Synth {
	return &Synth{rng: rng}
}

// Pop is a bubbly sine chirp over a short burst of band-passed noise.
func (s *Synth) Pop() beep.Streamer {
	chirp := newTone(waveSine, []glide{
		{0, 600},
		{40 * time.Millisecond, 1200},
		{120 * time.Millisecond, 300},
	}, 1, 10*time.Millisecond, 150*time.Millisecond)
	noise := newBandNoise(s.rng, 2000, 2, 60*time.Millisecond)
	return beep.Mix(chirp, withGain(noise, 0.3))
}

// BurstPop is a shorter triangle chirp at a random base pitch, used when a
// press spawns several reactions.
func (s *Synth) BurstPop() beep.Streamer {
	base := 400 + s.rng.Float64()*400
	return newTone(waveTriangle, []glide{
		{0, base},
		{30 * time.Millisecond, base * 2.5},
		{100 * time.Millisecond, base * 0.5},
	}, 0.7, 5*time.Millisecond, 120*time.Millisecond)
}

// math.Log2(0) is -Inf, so a zero gain is made silent instead.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
