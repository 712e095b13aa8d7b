package reaction

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTuning is wrapped by every error returned from Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng Source) float64 {
	return uniform(rng, r.Min, r.Max)
}

func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s range is inverted (%g > %g)", ErrInvalidTuning, name, r.Min, r.Max)
	}
	return nil
}

// Tuning holds every numeric knob of the simulation. It is read at
// construction time and never re-read while reactions run.
type Tuning struct {
	// Viewport in logical units. Reactions spawn near the bottom edge and
	// rise toward negative y.
	Width, Height float64
	MaxActive     int

	SpawnMargin float64 // spawn y is Height - SpawnMargin
	SpawnJitter float64 // horizontal jitter around the centre for Spawn
	TargetY     float64 // reactions die once they rise past this y

	RiseSpeed       Range
	WobbleAmplitude Range
	WobbleFrequency Range

	InitialScale float64
	MaxScale     float64
	PopInEnd     float64 // progress at which the elastic pop-in ends
	FadeStart    float64 // progress at which shrink and fade begin
	Lifetime     time.Duration

	Particles ParticleTuning
}

// ParticleTuning controls trail emission.
type ParticleTuning struct {
	Enabled  bool
	Interval time.Duration // minimum time between emissions
	Cutoff   float64       // no emission at or after this progress
	PerEmit  int
	Spread   float64 // horizontal jitter, ± units
	Drop     float64 // vertical jitter below the reaction, 0..Drop units
	VX, VY   float64 // initial velocity jitter, ± units per tick
	Opacity  float64
	Size     Range
	Decay    Range

	// BurstCount radial particles are thrown out when a reaction spawns.
	BurstCount int
}

// DefaultTuning returns the stock tuning for a width×height viewport.
func DefaultTuning(width, height float64) Tuning {
	return Tuning{
		Width:           width,
		Height:          height,
		MaxActive:       50,
		SpawnMargin:     80,
		SpawnJitter:     60,
		TargetY:         -50,
		RiseSpeed:       Range{1.5, 3.5},
		WobbleAmplitude: Range{20, 40},
		WobbleFrequency: Range{0.02, 0.04},
		InitialScale:    0.3,
		MaxScale:        1.2,
		PopInEnd:        0.15,
		FadeStart:       0.7,
		Lifetime:        3 * time.Second,
		Particles: ParticleTuning{
			Enabled:  true,
			Interval: 50 * time.Millisecond,
			Cutoff:   0.8,
			PerEmit:  1,
			Spread:   15,
			Drop:     10,
			VX:       0.5,
			VY:       0.3,
			Opacity:  0.5,
			Size:     Range{2, 6},
			Decay:    Range{0.015, 0.04},
		},
	}
}

// Validate rejects tunings that would make the simulation misbehave, such as
// a zero lifetime dividing progress or particles that never decay.
func (t Tuning) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %gx%g", ErrInvalidTuning, t.Width, t.Height)
	}
	if t.MaxActive <= 0 {
		return fmt.Errorf("%w: max active must be positive, got %d", ErrInvalidTuning, t.MaxActive)
	}
	if t.Lifetime <= 0 {
		return fmt.Errorf("%w: lifetime must be positive, got %v", ErrInvalidTuning, t.Lifetime)
	}
	if t.MaxScale <= 0 || t.InitialScale < 0 {
		return fmt.Errorf("%w: scales must be positive, got initial %g max %g", ErrInvalidTuning, t.InitialScale, t.MaxScale)
	}
	if t.PopInEnd <= 0 || t.PopInEnd > t.FadeStart || t.FadeStart >= 1 {
		return fmt.Errorf("%w: need 0 < pop-in end <= fade start < 1, got %g and %g", ErrInvalidTuning, t.PopInEnd, t.FadeStart)
	}
	if t.SpawnJitter < 0 {
		return fmt.Errorf("%w: spawn jitter must not be negative, got %g", ErrInvalidTuning, t.SpawnJitter)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"rise speed", t.RiseSpeed},
		{"wobble amplitude", t.WobbleAmplitude},
		{"wobble frequency", t.WobbleFrequency},
		{"particle size", t.Particles.Size},
		{"particle decay", t.Particles.Decay},
	} {
		if err := r.r.validate(r.name); err != nil {
			return err
		}
	}
	if t.RiseSpeed.Min <= 0 {
		return fmt.Errorf("%w: rise speed must be positive, got %g", ErrInvalidTuning, t.RiseSpeed.Min)
	}
	return t.Particles.validate()
}

func (p ParticleTuning) validate() error {
	if p.BurstCount < 0 {
		return fmt.Errorf("%w: burst count must not be negative, got %d", ErrInvalidTuning, p.BurstCount)
	}
	if !p.Enabled {
		return nil
	}
	if p.Decay.Min <= 0 {
		return fmt.Errorf("%w: particle decay must be positive, got %g", ErrInvalidTuning, p.Decay.Min)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("%w: particle interval must be positive, got %v", ErrInvalidTuning, p.Interval)
	}
	if p.PerEmit <= 0 {
		return fmt.Errorf("%w: particles per emission must be positive, got %d", ErrInvalidTuning, p.PerEmit)
	}
	if p.Spread < 0 || p.Drop < 0 {
		return fmt.Errorf("%w: particle jitter must not be negative", ErrInvalidTuning)
	}
	return nil
}
