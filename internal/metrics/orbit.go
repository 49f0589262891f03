// Package metrics provides per-tick observations aggregated over a run.
package metrics

import (
	"math"

	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

// RadiusDrift tracks the worst relative deviation of the orbital radius
// from its first observed value. Near zero for a well-integrated
// circular orbit.
type RadiusDrift struct {
	r0       float64
	maxDrift float64
	samples  int
}

func NewRadiusDrift() *RadiusDrift {
	return &RadiusDrift{}
}

func (m *RadiusDrift) Name() string { return "radius_drift" }

func (m *RadiusDrift) Observe(s *lander.State) {
	r := s.Position.Norm()
	if m.samples == 0 {
		m.r0 = r
	}
	m.samples++
	if m.r0 != 0 {
		drift := math.Abs(r-m.r0) / m.r0
		if drift > m.maxDrift {
			m.maxDrift = drift
		}
	}
}

func (m *RadiusDrift) Value() float64 { return m.maxDrift }

func (m *RadiusDrift) Reset() {
	m.r0 = 0
	m.maxDrift = 0
	m.samples = 0
}

// EnergyDrift tracks the worst relative deviation of the specific
// orbital energy v^2/2 - mu/r from its first observed value.
type EnergyDrift struct {
	mu       float64
	e0       float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(p planet.Planet) *EnergyDrift {
	return &EnergyDrift{mu: p.Mu()}
}

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) energy(s *lander.State) float64 {
	r := s.Position.Norm()
	if r == 0 {
		return 0
	}
	return 0.5*s.Velocity.Norm2() - m.mu/r
}

func (m *EnergyDrift) Observe(s *lander.State) {
	e := m.energy(s)
	if m.samples == 0 {
		m.e0 = e
	}
	m.samples++
	if m.e0 != 0 {
		drift := math.Abs(e-m.e0) / math.Abs(m.e0)
		if drift > m.maxDrift {
			m.maxDrift = drift
		}
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.e0 = 0
	m.maxDrift = 0
	m.samples = 0
}
