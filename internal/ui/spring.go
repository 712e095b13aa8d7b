package ui

import "github.com/charmbracelet/harmonica"

// springField animates a set of values toward their targets, one spring
// step per frame.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(fps, n int, frequency, damping float64) springField {
	return springField{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

// kick jumps value i to v; later steps ease it back.
func (s *springField) kick(i int, v float64) {
	if i < 0 || i >= len(s.pos) {
		return
	}
	s.pos[i] = v
	s.vel[i] = 0
}

func (s *springField) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

func (s *springField) value(i int) float64 {
	if i < 0 || i >= len(s.pos) {
		return 0
	}
	return s.pos[i]
}
