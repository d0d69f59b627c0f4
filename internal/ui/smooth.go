package ui

import "github.com/charmbracelet/harmonica"

// smoother eases a single value toward a target, one step per frame.
type smoother struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newSmoother(fps int, frequency, damping float64) smoother {
	return smoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *smoother) step(target float64) float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	return s.pos
}

func (s *smoother) snap(v float64) {
	s.pos = v
	s.vel = 0
}
