package lander

import "fmt"

// ChuteStatus is the parachute state.
type ChuteStatus int

const (
	ChuteNotDeployed ChuteStatus = iota
	ChuteDeployed
	ChuteLost
)

func (c ChuteStatus) String() string {
	switch c {
	case ChuteNotDeployed:
		return "not deployed"
	case ChuteDeployed:
		return "deployed"
	case ChuteLost:
		return "lost"
	default:
		return fmt.Sprintf("chute(%d)", int(c))
	}
}

// State is the complete lander state, mutated once per tick by the
// integrator. The autopilot writes Throttle and the stabilizer writes
// Orientation; nothing else touches it mid-run.
type State struct {
	Position    Vec3 // planet-centered Cartesian, m
	Velocity    Vec3 // m/s
	Orientation Vec3 // xyz Euler angles, degrees

	Fuel     float64 // fraction of capacity remaining, 0..1
	Throttle float64 // 0..1
	Chute    ChuteStatus

	Time float64 // simulation clock, s
	Dt   float64 // fixed step, s; constant for a run

	AutopilotEnabled   bool
	StabilizedAttitude bool
}

// IsValid reports whether the state is finite and physically sane
// enough to tick: no NaN/Inf anywhere and the lander is not at the
// planet center (gravity would be singular).
func (s *State) IsValid() bool {
	if !s.Position.IsFinite() || !s.Velocity.IsFinite() || !s.Orientation.IsFinite() {
		return false
	}
	if s.Position.Norm2() == 0 {
		return false
	}
	return true
}

// Altitude returns height above the given planet radius.
func (s *State) Altitude(radius float64) float64 {
	return s.Position.Norm() - radius
}

// DescentRate returns the radial velocity component: negative while
// approaching the planet.
func (s *State) DescentRate() float64 {
	r := s.Position.Norm()
	if r == 0 {
		return 0
	}
	return s.Position.Dot(s.Velocity) / r
}

// Clamp forces fuel and throttle back into [0,1].
func (s *State) Clamp() {
	s.Fuel = clamp01(s.Fuel)
	s.Throttle = clamp01(s.Throttle)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Integrator advances position and velocity by one fixed step given the
// net acceleration at the current state. Implementations may hold one
// step of history; Reset discards it at the start of a run.
type Integrator interface {
	Step(s *State, acc Vec3)
	Reset()
}

// Metric aggregates a per-tick observation over a run.
type Metric interface {
	Name() string
	Observe(s *State)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(s *State)
}
