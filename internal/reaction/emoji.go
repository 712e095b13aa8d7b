package reaction

import (
	"math"
	"time"
)

const (
	wobbleStep = 1.5

	defaultRiseSpeed  = 2.0
	defaultWobbleAmp  = 30.0
	defaultWobbleFreq = 0.03

	maxRotationSpeed = 2.0
)

// Launch describes a reaction about to be created. Zero motion fields select
// the defaults.
type Launch struct {
	Glyph   string
	Color   string
	X, Y    float64
	StartY  float64
	TargetY float64

	RiseSpeed  float64
	WobbleAmp  float64
	WobbleFreq float64
	Lifetime   time.Duration
}

// Emoji is one floating reaction. Renderers read its exported fields; only
// Update mutates them.
type Emoji struct {
	Glyph string
	Color string

	X, Y    float64
	StartY  float64
	TargetY float64

	RiseSpeed   float64
	WobbleAmp   float64
	WobbleFreq  float64
	WobblePhase float64

	Scale         float64
	MaxScale      float64
	Opacity       float64
	Rotation      float64
	RotationSpeed float64

	Born     time.Time
	Lifetime time.Duration

	// Particles is the live trail, oldest first.
	Particles []Particle

	alive    bool
	emitted  bool
	lastEmit time.Time
	tuning   *Tuning
	rng      Source
}

var fallbackTuning = DefaultTuning(420, 600)

// NewEmoji creates a living reaction born at born. A nil tuning uses the
// defaults.
func NewEmoji(l Launch, t *Tuning, born time.Time, rng Source) *Emoji {
	if t == nil {
		t = &fallbackTuning
	}
	if rng == nil {
		rng = newSource(uint64(born.UnixNano()))
	}
	e := &Emoji{
		Glyph:         l.Glyph,
		Color:         l.Color,
		X:             l.X,
		Y:             l.Y,
		StartY:        l.StartY,
		TargetY:       l.TargetY,
		RiseSpeed:     orDefault(l.RiseSpeed, defaultRiseSpeed),
		WobbleAmp:     orDefault(l.WobbleAmp, defaultWobbleAmp),
		WobbleFreq:    orDefault(l.WobbleFreq, defaultWobbleFreq),
		WobblePhase:   uniform(rng, 0, 2*math.Pi),
		RotationSpeed: uniform(rng, -maxRotationSpeed, maxRotationSpeed),
		Scale:         t.InitialScale,
		MaxScale:      t.MaxScale,
		Opacity:       1,
		Born:          born,
		Lifetime:      l.Lifetime,
		alive:         true,
		tuning:        t,
		rng:           rng,
	}
	if e.Lifetime == 0 {
		e.Lifetime = t.Lifetime
	}
	return e
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Alive reports whether the reaction is still animating. Once false it stays
// false.
func (e *Emoji) Alive() bool { return e.alive }

// Age is the time elapsed since the reaction was born.
func (e *Emoji) Age(now time.Time) time.Duration {
	return now.Sub(e.Born)
}

// Progress maps the age onto [0, 1]. A non-positive lifetime is already over.
func (e *Emoji) Progress(now time.Time) float64 {
	if e.Lifetime <= 0 {
		return 1
	}
	return clamp01(float64(e.Age(now)) / float64(e.Lifetime))
}

// Update advances the reaction by one tick at time now.
func (e *Emoji) Update(now time.Time) {
	if !e.alive {
		return
	}
	progress := e.Progress(now)

	e.Y -= e.RiseSpeed
	// Wobble follows distance travelled, not elapsed time.
	e.X += math.Sin(e.Y*e.WobbleFreq+e.WobblePhase) * wobbleStep

	e.Scale = e.scaleAt(progress)
	e.Opacity = e.opacityAt(progress)
	e.Rotation += e.RotationSpeed

	trail := &e.tuning.Particles
	if trail.Enabled && progress < trail.Cutoff && (!e.emitted || now.Sub(e.lastEmit) >= trail.Interval) {
		for range trail.PerEmit {
			e.emit()
		}
		e.emitted = true
		e.lastEmit = now
	}

	live := e.Particles[:0]
	for i := range e.Particles {
		p := e.Particles[i]
		p.Update()
		if p.Alive() {
			live = append(live, p)
		}
	}
	e.Particles = live

	if progress >= 1 || e.Y < e.TargetY {
		e.alive = false
	}
}

func (e *Emoji) scaleAt(progress float64) float64 {
	t := e.tuning
	switch {
	case progress < t.PopInEnd:
		return e.MaxScale * ElasticEase(progress/t.PopInEnd)
	case progress < t.FadeStart:
		return e.MaxScale
	default:
		s := (progress - t.FadeStart) / (1 - t.FadeStart)
		return e.MaxScale * (1 - s*s)
	}
}

func (e *Emoji) opacityAt(progress float64) float64 {
	fade := e.tuning.FadeStart
	if progress <= fade {
		return 1
	}
	return 1 - (progress-fade)/(1-fade)
}

func (e *Emoji) emit() {
	tr := &e.tuning.Particles
	e.Particles = append(e.Particles, NewParticle(
		e.X+uniform(e.rng, -tr.Spread, tr.Spread),
		e.Y+uniform(e.rng, 0, tr.Drop),
		uniform(e.rng, -tr.VX, tr.VX),
		uniform(e.rng, -tr.VY, tr.VY),
		tr.Size.sample(e.rng),
		tr.Opacity,
		e.Color,
		tr.Decay.sample(e.rng),
	))
}

// Burst throws n particles outward in a ring around the reaction.
func (e *Emoji) Burst(n int) {
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + e.rng.Float64()*0.3
		speed := uniform(e.rng, 1, 4)
		e.Particles = append(e.Particles, NewParticle(
			e.X,
			e.Y,
			math.Cos(angle)*speed,
			math.Sin(angle)*speed,
			uniform(e.rng, 2, 5),
			e.tuning.Particles.Opacity,
			e.Color,
			uniform(e.rng, 0.02, 0.05),
		))
	}
}
