package integrators

import (
	"fmt"

	"github.com/san-kum/landersim/internal/lander"
)

// Verlet is the two-step position method:
//
//	x[n+1] = 2*x[n] - x[n-1] + a*dt^2
//	v[n+1] = (x[n+1] - x[n-1]) / (2*dt)
//
// It needs one prior position sample it does not have on the first
// call, so the first step is seeded with a one-step explicit update:
//
//	x[1] = x[0] + v*dt + a*dt^2/2
//	v[1] = v[0] + a*dt
//
// The previous position is the only hidden state. Whether it is present
// decides the bootstrap, not a time comparison, so a run resumed from
// nonzero time still primes correctly.
type Verlet struct {
	prev   lander.Vec3
	primed bool
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(s *lander.State, acc lander.Vec3) {
	dt := s.Dt
	if !v.primed {
		v.prev = s.Position
		newPos := s.Position.Add(s.Velocity.Scale(dt)).Add(acc.Scale(0.5 * dt * dt))
		s.Velocity = s.Velocity.Add(acc.Scale(dt))
		s.Position = newPos
		v.primed = true
		return
	}

	newPos := s.Position.Scale(2).Sub(v.prev).Add(acc.Scale(dt * dt))
	newVel := newPos.Sub(v.prev).Scale(1 / (2 * dt))
	v.prev = s.Position
	s.Position = newPos
	s.Velocity = newVel
}

// Reset discards the position history; the next Step bootstraps again.
func (v *Verlet) Reset() {
	v.prev = lander.Vec3{}
	v.primed = false
}

// New returns the integrator for a policy name.
func New(name string) (lander.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "verlet":
		return NewVerlet(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the selectable policies.
func Names() []string {
	return []string{"euler", "verlet"}
}
