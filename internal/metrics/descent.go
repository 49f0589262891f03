package metrics

import "github.com/san-kum/landersim/internal/lander"

// MinAltitude records the lowest altitude reached during a run.
type MinAltitude struct {
	radius  float64
	min     float64
	samples int
}

func NewMinAltitude(radius float64) *MinAltitude {
	return &MinAltitude{radius: radius}
}

func (m *MinAltitude) Name() string { return "min_altitude" }

func (m *MinAltitude) Observe(s *lander.State) {
	alt := s.Altitude(m.radius)
	if m.samples == 0 || alt < m.min {
		m.min = alt
	}
	m.samples++
}

func (m *MinAltitude) Value() float64 { return m.min }

func (m *MinAltitude) Reset() {
	m.min = 0
	m.samples = 0
}

// FuelUsed records the fuel fraction consumed since the first sample.
type FuelUsed struct {
	first   float64
	last    float64
	samples int
}

func NewFuelUsed() *FuelUsed {
	return &FuelUsed{}
}

func (m *FuelUsed) Name() string { return "fuel_used" }

func (m *FuelUsed) Observe(s *lander.State) {
	if m.samples == 0 {
		m.first = s.Fuel
	}
	m.last = s.Fuel
	m.samples++
}

func (m *FuelUsed) Value() float64 { return m.first - m.last }

func (m *FuelUsed) Reset() {
	m.first = 0
	m.last = 0
	m.samples = 0
}

// ControlEffort is the mean throttle over a run.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s *lander.State) {
	c.sum += s.Throttle
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
