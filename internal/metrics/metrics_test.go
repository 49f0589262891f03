package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

func TestRadiusDrift(t *testing.T) {
	m := NewRadiusDrift()

	m.Observe(&lander.State{Position: lander.Vec3{X: 1000}})
	m.Observe(&lander.State{Position: lander.Vec3{X: 1010}})
	m.Observe(&lander.State{Position: lander.Vec3{X: 995}})

	if math.Abs(m.Value()-0.01) > 1e-12 {
		t.Errorf("radius drift = %v, want 0.01", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyDriftConstantOrbit(t *testing.T) {
	p := planet.Mars()
	m := NewEnergyDrift(p)

	r := 1.2 * p.Radius
	v := math.Sqrt(p.Mu() / r)

	// Same energy at two points of a circular orbit.
	m.Observe(&lander.State{Position: lander.Vec3{X: r}, Velocity: lander.Vec3{Y: -v}})
	m.Observe(&lander.State{Position: lander.Vec3{Y: -r}, Velocity: lander.Vec3{X: -v}})

	if m.Value() > 1e-12 {
		t.Errorf("energy drift on a circle should be ~0, got %e", m.Value())
	}
}

func TestMinAltitude(t *testing.T) {
	p := planet.Mars()
	m := NewMinAltitude(p.Radius)

	for _, alt := range []float64{10000, 4000, 7000, 2500, 6000} {
		m.Observe(&lander.State{Position: lander.Vec3{Y: -(p.Radius + alt)}})
	}

	if math.Abs(m.Value()-2500) > 1e-6 {
		t.Errorf("min altitude = %v, want 2500", m.Value())
	}
}

func TestFuelUsed(t *testing.T) {
	m := NewFuelUsed()

	m.Observe(&lander.State{Fuel: 1.0})
	m.Observe(&lander.State{Fuel: 0.8})
	m.Observe(&lander.State{Fuel: 0.65})

	if math.Abs(m.Value()-0.35) > 1e-12 {
		t.Errorf("fuel used = %v, want 0.35", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	if m.Value() != 0 {
		t.Error("no samples should read 0")
	}

	m.Observe(&lander.State{Throttle: 0.5})
	m.Observe(&lander.State{Throttle: 1.0})

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("control effort = %v, want 0.75", m.Value())
	}
}
