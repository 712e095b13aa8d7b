// Package config loads tapburst settings from YAML or JSON files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/tapburst/internal/reaction"
	"github.com/olivier-w/tapburst/internal/sound"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error from Load and Validate.
var ErrInvalid = errors.New("invalid settings")

// Settings mirrors the settings file. Keys left out of a file keep the
// values from Default.
type Settings struct {
	Window    Window     `yaml:"window"`
	Emojis    []Reaction `yaml:"emojis"`
	Animation Animation  `yaml:"animation"`
	Particles Particles  `yaml:"particles"`
	Sound     Sound      `yaml:"sound"`

	// Path is the file the settings came from, empty for defaults.
	Path string `yaml:"-"`
}

// Window describes the logical viewport. The bottom ButtonArea units are
// reserved for the reaction bar, the rest is the canvas.
type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ButtonArea int    `yaml:"button_area"`
	Background string `yaml:"background"`
}

// Reaction is one entry of the reaction catalog.
type Reaction struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

type Animation struct {
	RiseSpeedMin       float64 `yaml:"rise_speed_min"`
	RiseSpeedMax       float64 `yaml:"rise_speed_max"`
	WobbleAmplitudeMin float64 `yaml:"wobble_amplitude_min"`
	WobbleAmplitudeMax float64 `yaml:"wobble_amplitude_max"`
	WobbleFrequencyMin float64 `yaml:"wobble_frequency_min"`
	WobbleFrequencyMax float64 `yaml:"wobble_frequency_max"`
	InitialScale       float64 `yaml:"initial_scale"`
	MaxScale           float64 `yaml:"max_scale"`
	PopInEnd           float64 `yaml:"pop_in_end"`
	FadeStart          float64 `yaml:"fade_start"`
	LifetimeMS         int     `yaml:"lifetime_ms"`
	SpawnSize          float64 `yaml:"spawn_size"`
	MaxActive          int     `yaml:"max_active"`
	SpawnJitter        float64 `yaml:"spawn_jitter"`
	SpawnMargin        float64 `yaml:"spawn_margin"`
	TargetY            float64 `yaml:"target_y"`
	BurstJitter        float64 `yaml:"burst_jitter"`
}

type Particles struct {
	Enabled    bool    `yaml:"enabled"`
	IntervalMS int     `yaml:"interval_ms"`
	Cutoff     float64 `yaml:"cutoff"`
	PerEmit    int     `yaml:"per_emit"`
	Spread     float64 `yaml:"spread"`
	Drop       float64 `yaml:"drop"`
	SizeMin    float64 `yaml:"size_min"`
	SizeMax    float64 `yaml:"size_max"`
	DecayMin   float64 `yaml:"decay_min"`
	DecayMax   float64 `yaml:"decay_max"`
	Opacity    float64 `yaml:"opacity"`
	BurstCount int     `yaml:"burst_count"`
}

type Sound struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`
	PopFile   string  `yaml:"pop_file"`
	BurstFile string  `yaml:"burst_file"`
}

// Default returns the built-in settings.
func Default() Settings {
	const width, height, buttons = 420, 700, 100
	t := reaction.DefaultTuning(width, height-buttons)
	return Settings{
		Window: Window{
			Width:      width,
			Height:     height,
			ButtonArea: buttons,
			Background: "#1a1a2e",
		},
		Emojis: []Reaction{
			{Icon: "❤️", Label: "Love", Color: "#ff3b5c"},
			{Icon: "😂", Label: "Haha", Color: "#ffcc00"},
			{Icon: "😮", Label: "Wow", Color: "#ff9500"},
			{Icon: "😢", Label: "Sad", Color: "#5ac8fa"},
			{Icon: "😡", Label: "Angry", Color: "#ff2d55"},
			{Icon: "👍", Label: "Like", Color: "#34c759"},
		},
		Animation: Animation{
			RiseSpeedMin:       t.RiseSpeed.Min,
			RiseSpeedMax:       t.RiseSpeed.Max,
			WobbleAmplitudeMin: t.WobbleAmplitude.Min,
			WobbleAmplitudeMax: t.WobbleAmplitude.Max,
			WobbleFrequencyMin: t.WobbleFrequency.Min,
			WobbleFrequencyMax: t.WobbleFrequency.Max,
			InitialScale:       t.InitialScale,
			MaxScale:           t.MaxScale,
			PopInEnd:           t.PopInEnd,
			FadeStart:          t.FadeStart,
			LifetimeMS:         int(t.Lifetime / time.Millisecond),
			SpawnSize:          42,
			MaxActive:          t.MaxActive,
			SpawnJitter:        t.SpawnJitter,
			SpawnMargin:        t.SpawnMargin,
			TargetY:            t.TargetY,
			BurstJitter:        80,
		},
		Particles: Particles{
			Enabled:    t.Particles.Enabled,
			IntervalMS: int(t.Particles.Interval / time.Millisecond),
			Cutoff:     t.Particles.Cutoff,
			PerEmit:    t.Particles.PerEmit,
			Spread:     t.Particles.Spread,
			Drop:       t.Particles.Drop,
			SizeMin:    t.Particles.Size.Min,
			SizeMax:    t.Particles.Size.Max,
			DecayMin:   t.Particles.Decay.Min,
			DecayMax:   t.Particles.Decay.Max,
			Opacity:    t.Particles.Opacity,
			BurstCount: t.Particles.BurstCount,
		},
		Sound: Sound{
			Enabled: true,
			Volume:  0.15,
		},
	}
}

// Load reads settings from path over the defaults and validates them.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	s.Path = path
	s.resolvePaths()

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SearchPaths lists the files Find tries, in order.
var SearchPaths = []string{
	filepath.Join("config", "settings.yaml"),
	filepath.Join("config", "settings.json"),
	"settings.yaml",
	"settings.json",
}

// Find loads the file named by TAPBURST_CONFIG, or else the first existing
// file from SearchPaths. With neither it returns Default.
func Find() (Settings, error) {
	if path := GetEnv(EnvConfig, ""); path != "" {
		return Load(path)
	}
	for _, path := range SearchPaths {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Sound clip paths are relative to the settings file.
func (s *Settings) resolvePaths() {
	dir := filepath.Dir(s.Path)
	for _, p := range []*string{&s.Sound.PopFile, &s.Sound.BurstFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks the catalog, the window, the sound clips and the animation
// tuning. Clip files are only checked for a known extension here.
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= s.Window.ButtonArea || s.Window.ButtonArea < 0 {
		return fmt.Errorf("%w: window %dx%d cannot fit a %d unit button area", ErrInvalid, s.Window.Width, s.Window.Height, s.Window.ButtonArea)
	}
	if _, err := colorful.Hex(s.Window.Background); err != nil {
		return fmt.Errorf("%w: window background %q is not a hex color", ErrInvalid, s.Window.Background)
	}
	if len(s.Emojis) == 0 {
		return fmt.Errorf("%w: emojis cannot be empty", ErrInvalid)
	}
	for i, r := range s.Emojis {
		if r.Icon == "" {
			return fmt.Errorf("%w: emojis[%d] has no icon", ErrInvalid, i)
		}
		if _, err := colorful.Hex(r.Color); err != nil {
			return fmt.Errorf("%w: emojis[%d] color %q is not a hex color", ErrInvalid, i, r.Color)
		}
	}
	if s.Animation.SpawnSize <= 0 {
		return fmt.Errorf("%w: animation.spawn_size must be positive, got %g", ErrInvalid, s.Animation.SpawnSize)
	}
	if s.Animation.BurstJitter < 0 {
		return fmt.Errorf("%w: animation.burst_jitter must not be negative, got %g", ErrInvalid, s.Animation.BurstJitter)
	}
	if s.Sound.Volume < 0 || s.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound.volume must be within [0, 1], got %g", ErrInvalid, s.Sound.Volume)
	}
	for _, f := range []struct{ key, path string }{
		{"sound.pop_file", s.Sound.PopFile},
		{"sound.burst_file", s.Sound.BurstFile},
	} {
		if ext := filepath.Ext(f.path); f.path != "" && !sound.IsSupportedExt(ext) {
			return fmt.Errorf("%w: %s has unsupported format %q (supported: %s)", ErrInvalid, f.key, ext, sound.SupportedExtsList())
		}
	}
	if err := s.Tuning().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// CanvasHeight is the logical height left for floating reactions.
func (s Settings) CanvasHeight() int {
	return s.Window.Height - s.Window.ButtonArea
}

// Tuning converts the animation and particle sections for the simulation.
func (s Settings) Tuning() reaction.Tuning {
	a, p := s.Animation, s.Particles
	return reaction.Tuning{
		Width:           float64(s.Window.Width),
		Height:          float64(s.CanvasHeight()),
		MaxActive:       a.MaxActive,
		SpawnMargin:     a.SpawnMargin,
		SpawnJitter:     a.SpawnJitter,
		TargetY:         a.TargetY,
		RiseSpeed:       reaction.Range{Min: a.RiseSpeedMin, Max: a.RiseSpeedMax},
		WobbleAmplitude: reaction.Range{Min: a.WobbleAmplitudeMin, Max: a.WobbleAmplitudeMax},
		WobbleFrequency: reaction.Range{Min: a.WobbleFrequencyMin, Max: a.WobbleFrequencyMax},
		InitialScale:    a.InitialScale,
		MaxScale:        a.MaxScale,
		PopInEnd:        a.PopInEnd,
		FadeStart:       a.FadeStart,
		Lifetime:        time.Duration(a.LifetimeMS) * time.Millisecond,
		Particles: reaction.ParticleTuning{
			Enabled:    p.Enabled,
			Interval:   time.Duration(p.IntervalMS) * time.Millisecond,
			Cutoff:     p.Cutoff,
			PerEmit:    p.PerEmit,
			Spread:     p.Spread,
			Drop:       p.Drop,
			VX:         0.5,
			VY:         0.3,
			Opacity:    p.Opacity,
			Size:       reaction.Range{Min: p.SizeMin, Max: p.SizeMax},
			Decay:      reaction.Range{Min: p.DecayMin, Max: p.DecayMax},
			BurstCount: p.BurstCount,
		},
	}
}
