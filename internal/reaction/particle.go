package reaction

const (
	particleGravity   = 0.02
	particleShrink    = 0.97
	particleFadeRatio = 0.6

	// DefaultDecay is the per-tick life loss of a particle built without one.
	DefaultDecay = 0.02
)

// Particle is a trail fragment. It belongs to exactly one Emoji and is
// advanced only through that emoji's Update.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Color   string
	Life    float64 // 1 at birth, dead at or below 0
	Decay   float64 // life lost per tick
}

// NewParticle creates a particle with full life.
func NewParticle(x, y, vx, vy, size, opacity float64, color string, decay float64) Particle {
	if decay <= 0 {
		decay = DefaultDecay
	}
	return Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Size:    size,
		Opacity: opacity,
		Color:   color,
		Life:    1,
		Decay:   decay,
	}
}

// Update advances the particle by one tick.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += particleGravity
	p.Life -= p.Decay
	p.Opacity = max(0, p.Life*particleFadeRatio)
	p.Size *= particleShrink
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}
