// Package integrators provides the fixed-step integration policies:
// explicit Euler and the two-step position-Verlet method.
package integrators

import "github.com/san-kum/landersim/internal/lander"

// Euler is the one-step explicit policy: the position update uses the
// velocity from before the step. Cheap, but it pumps energy into
// orbital motion and spirals outward; kept as the selectable baseline
// the Verlet policy is measured against.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(s *lander.State, acc lander.Vec3) {
	dt := s.Dt
	newPos := s.Position.Add(s.Velocity.Scale(dt))
	s.Velocity = s.Velocity.Add(acc.Scale(dt))
	s.Position = newPos
}

// Reset is a no-op; Euler carries no history.
func (e *Euler) Reset() {}
