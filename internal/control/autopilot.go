// Package control provides the throttle controllers for the lander.
//
// The [Autopilot] is a proportional law targeting a descent rate that
// shrinks linearly with altitude. It is deliberately open loop with
// respect to fuel and carries no integral or derivative term.
package control

import "github.com/san-kum/landersim/internal/lander"

// Default gains for the descent law.
const (
	DefaultKh       = 0.03
	DefaultKp       = 0.5
	DefaultDeadband = 0.5
)

// Autopilot maps altitude and radial descent rate to a throttle in
// [0,1]. Stateless: safe to share across runs.
type Autopilot struct {
	Kh       float64 // altitude gain, 1/s
	Kp       float64 // proportional gain
	Deadband float64 // output range saturated to 0 or 1
	Radius   float64 // planet radius, m
}

// NewAutopilot returns the controller with the reference gains for the
// given planet radius.
func NewAutopilot(radius float64) *Autopilot {
	return &Autopilot{
		Kh:       DefaultKh,
		Kp:       DefaultKp,
		Deadband: DefaultDeadband,
		Radius:   radius,
	}
}

// Throttle computes the command for the given altitude and radial
// descent rate (negative while approaching the surface):
//
//	e    = -(0.5 + Kh*h + rate)
//	Pout = Kp * e
//
// saturated to 0 below -deadband, to 1 above 1-deadband, and offset by
// the deadband in between.
func (a *Autopilot) Throttle(altitude, descentRate float64) float64 {
	e := -(0.5 + a.Kh*altitude + descentRate)
	pout := a.Kp * e

	switch {
	case pout <= -a.Deadband:
		return 0
	case pout >= 1-a.Deadband:
		return 1
	default:
		return a.Deadband + pout
	}
}

// Update writes the throttle command for the state the integrator just
// produced. Called once per tick, after the dynamics update.
func (a *Autopilot) Update(s *lander.State) {
	s.Throttle = a.Throttle(s.Altitude(a.Radius), s.DescentRate())
}
