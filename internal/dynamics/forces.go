// Package dynamics computes the forces acting on the lander: gravity,
// aerodynamic drag (body and parachute canopy) and engine thrust.
package dynamics

import (
	"math"

	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

// Lander holds the vehicle constants.
type Lander struct {
	UnloadedMass float64 // kg
	FuelCapacity float64 // litres
	FuelDensity  float64 // kg/litre
	FuelRate     float64 // litres/s consumed at full throttle
	Size         float64 // m, body reference length
	MaxThrust    float64 // N
	DragCoef     float64 // body drag coefficient
	ChuteCoef    float64 // canopy drag coefficient
	MaxChuteDrag float64 // N, canopy tears above this
}

// NewLander returns the reference vehicle. Max thrust is 1.5 times the
// fully-loaded surface weight on the given planet.
func NewLander(p planet.Planet) Lander {
	l := Lander{
		UnloadedMass: 100.0,
		FuelCapacity: 100.0,
		FuelDensity:  1.0,
		FuelRate:     0.5,
		Size:         1.0,
		DragCoef:     1.0,
		ChuteCoef:    2.0,
		MaxChuteDrag: 20000.0,
	}
	loaded := l.UnloadedMass + l.FuelCapacity*l.FuelDensity
	l.MaxThrust = 1.5 * p.Mu() * loaded / (p.Radius * p.Radius)
	return l
}

// BodyArea returns the lander cross-section pi*size^2.
func (l Lander) BodyArea() float64 {
	return math.Pi * l.Size * l.Size
}

// ChuteArea returns the canopy reference area, a fixed geometric
// multiple of the lander size: five squares of side 2*size.
func (l Lander) ChuteArea() float64 {
	return 5.0 * (2.0 * l.Size) * (2.0 * l.Size)
}

// Model is the force model: planet plus vehicle. Methods are pure
// functions of the state.
type Model struct {
	Planet planet.Planet
	Lander Lander
}

func NewModel(p planet.Planet) *Model {
	return &Model{Planet: p, Lander: NewLander(p)}
}

// Mass returns the current total mass: unloaded mass plus remaining fuel.
func (m *Model) Mass(s *lander.State) float64 {
	return m.Lander.UnloadedMass + s.Fuel*m.Lander.FuelCapacity*m.Lander.FuelDensity
}

// Gravity returns the gravitational force, directed at the planet center.
// The caller guarantees |position| > 0.
func (m *Model) Gravity(s *lander.State) lander.Vec3 {
	mag := m.Planet.Mu() * m.Mass(s) / s.Position.Norm2()
	return s.Position.Unit().Scale(-mag)
}

// Drag returns the aerodynamic force opposing the velocity. A deployed
// parachute adds the canopy term; a lost one contributes nothing. Zero
// velocity produces zero drag.
func (m *Model) Drag(s *lander.State) lander.Vec3 {
	rho := m.Planet.Density(s.Position.Norm())
	q := 0.5 * rho * s.Velocity.Norm2()

	mag := q * m.Lander.DragCoef * m.Lander.BodyArea()
	if s.Chute == lander.ChuteDeployed {
		mag += m.chuteDrag(s)
	}
	return s.Velocity.Unit().Scale(-mag)
}

func (m *Model) chuteDrag(s *lander.State) float64 {
	rho := m.Planet.Density(s.Position.Norm())
	return 0.5 * rho * s.Velocity.Norm2() * m.Lander.ChuteCoef * m.Lander.ChuteArea()
}

// ChuteOverloaded reports whether a deployed canopy would exceed its
// structural drag limit at the current state.
func (m *Model) ChuteOverloaded(s *lander.State) bool {
	return m.chuteDrag(s) > m.Lander.MaxChuteDrag
}

// Thrust returns the engine force along the body up axis in world
// coordinates. Zero throttle or an empty tank produces no thrust.
func (m *Model) Thrust(s *lander.State) lander.Vec3 {
	if s.Throttle <= 0 || s.Fuel <= 0 {
		return lander.Vec3{}
	}
	return BodyUp(s.Orientation).Scale(s.Throttle * m.Lander.MaxThrust)
}

// Acceleration returns the net acceleration: (gravity+drag+thrust)/mass.
func (m *Model) Acceleration(s *lander.State) lander.Vec3 {
	net := m.Gravity(s).Add(m.Drag(s)).Add(m.Thrust(s))
	return net.Scale(1 / m.Mass(s))
}

// BurnFuel depletes the tank for one step at the current throttle and
// clamps the fraction at zero.
func (m *Model) BurnFuel(s *lander.State) {
	if m.Lander.FuelCapacity <= 0 {
		return
	}
	s.Fuel -= s.Throttle * m.Lander.FuelRate * s.Dt / m.Lander.FuelCapacity
	if s.Fuel < 0 {
		s.Fuel = 0
	}
}

// Validate rejects vehicle constants outside physical sense.
func (m *Model) Validate() error {
	if m.Lander.UnloadedMass <= 0 || m.Lander.FuelDensity < 0 || m.Lander.FuelCapacity < 0 {
		return lander.ErrParameterBounds
	}
	if m.Lander.MaxThrust < 0 || m.Lander.Size <= 0 {
		return lander.ErrParameterBounds
	}
	if m.Planet.Mass <= 0 || m.Planet.Radius <= 0 {
		return lander.ErrParameterBounds
	}
	return nil
}
