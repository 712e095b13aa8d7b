package reaction

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Manager owns the active reactions. It is driven from a single goroutine:
// Spawn on input, Update once per frame, then Emojis for rendering.
type Manager struct {
	tuning Tuning
	clock  Clock
	rng    Source
	logger *log.Logger

	emojis []*Emoji
	total  int
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithRand sets the random source used for spawn parameters.
func WithRand(rng Source) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithSeed seeds the default random source for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(m *Manager) { m.rng = newSource(seed) }
}

// WithLogger sets the logger used for eviction diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager validates t and returns an empty manager.
func NewManager(t Tuning, opts ...Option) (*Manager, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		tuning: t,
		emojis: make([]*Emoji, 0, t.MaxActive),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = SystemClock()
	}
	if m.rng == nil {
		m.rng = newSource(uint64(m.clock.Now().UnixNano()))
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m, nil
}

// Spawn launches a reaction around the horizontal centre of the viewport.
func (m *Manager) Spawn(glyph, color string) *Emoji {
	x := m.tuning.Width/2 + uniform(m.rng, -m.tuning.SpawnJitter, m.tuning.SpawnJitter)
	return m.SpawnAt(glyph, color, x)
}

// SpawnAt launches a reaction at horizontal position x. When the manager is
// full the oldest reaction is evicted first. It never fails.
func (m *Manager) SpawnAt(glyph, color string, x float64) *Emoji {
	for len(m.emojis) >= m.tuning.MaxActive {
		m.evictOldest()
	}

	spawnY := m.tuning.Height - m.tuning.SpawnMargin
	e := NewEmoji(Launch{
		Glyph:      glyph,
		Color:      color,
		X:          x,
		Y:          spawnY,
		StartY:     spawnY,
		TargetY:    m.tuning.TargetY,
		RiseSpeed:  m.tuning.RiseSpeed.sample(m.rng),
		WobbleAmp:  m.tuning.WobbleAmplitude.sample(m.rng),
		WobbleFreq: m.tuning.WobbleFrequency.sample(m.rng),
	}, &m.tuning, m.clock.Now(), m.rng)
	if n := m.tuning.Particles.BurstCount; n > 0 {
		e.Burst(n)
	}

	m.emojis = append(m.emojis, e)
	m.total++
	return e
}

func (m *Manager) evictOldest() {
	old := m.emojis[0]
	copy(m.emojis, m.emojis[1:])
	m.emojis[len(m.emojis)-1] = nil
	m.emojis = m.emojis[:len(m.emojis)-1]
	m.logger.Debug("evicted reaction", "glyph", old.Glyph, "age", m.clock.Now().Sub(old.Born), "active", len(m.emojis))
}

// Update advances every reaction by one tick and drops the dead ones,
// keeping spawn order.
func (m *Manager) Update() {
	now := m.clock.Now()
	n := 0
	for _, e := range m.emojis {
		e.Update(now)
		if e.Alive() {
			m.emojis[n] = e
			n++
		}
	}
	clear(m.emojis[n:])
	m.emojis = m.emojis[:n]
}

// Emojis returns the active reactions, oldest first. The slice is only valid
// until the next Spawn or Update and must not be modified.
func (m *Manager) Emojis() []*Emoji { return m.emojis }

// ActiveCount is the number of live reactions.
func (m *Manager) ActiveCount() int { return len(m.emojis) }

// TotalSpawned counts every spawn request, including ones that evicted an
// older reaction.
func (m *Manager) TotalSpawned() int { return m.total }

// Tuning returns the tuning the manager was built with.
func (m *Manager) Tuning() Tuning { return m.tuning }

func (m *Manager) String() string {
	return fmt.Sprintf("reactions{active: %d/%d, total: %d}", len(m.emojis), m.tuning.MaxActive, m.total)
}
