package dynamics

import (
	"math"
	"testing"

	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

func testModel() *Model {
	return NewModel(planet.Mars())
}

func TestMass(t *testing.T) {
	m := testModel()

	full := &lander.State{Fuel: 1}
	empty := &lander.State{Fuel: 0}

	wantFull := m.Lander.UnloadedMass + m.Lander.FuelCapacity*m.Lander.FuelDensity
	if got := m.Mass(full); math.Abs(got-wantFull) > 1e-12 {
		t.Errorf("full mass = %v, want %v", got, wantFull)
	}
	if got := m.Mass(empty); math.Abs(got-m.Lander.UnloadedMass) > 1e-12 {
		t.Errorf("empty mass = %v, want %v", got, m.Lander.UnloadedMass)
	}
	if m.Mass(empty) <= 0 {
		t.Error("mass must stay strictly positive with an empty tank")
	}
}

func TestGravityPointsAtCenter(t *testing.T) {
	m := testModel()

	for _, pos := range []lander.Vec3{
		{X: 4e6}, {Y: -4e6}, {Z: 3.5e6}, {X: 2e6, Y: 2e6, Z: -1e6},
	} {
		s := &lander.State{Position: pos, Fuel: 1}
		g := m.Gravity(s)

		wantMag := m.Planet.Mu() * m.Mass(s) / pos.Norm2()
		if math.Abs(g.Norm()-wantMag)/wantMag > 1e-12 {
			t.Errorf("gravity magnitude at %+v: got %v, want %v", pos, g.Norm(), wantMag)
		}
		// Direction: -unit(position).
		if g.Unit().Add(pos.Unit()).Norm() > 1e-12 {
			t.Errorf("gravity at %+v not directed at center", pos)
		}
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	m := testModel()

	s := &lander.State{
		Position: lander.Vec3{Y: -(m.Planet.Radius + 5000)},
		Velocity: lander.Vec3{X: 100, Y: -200},
		Fuel:     1,
	}
	d := m.Drag(s)

	if d.Norm() == 0 {
		t.Fatal("expected nonzero drag inside the atmosphere")
	}
	if d.Unit().Add(s.Velocity.Unit()).Norm() > 1e-12 {
		t.Error("drag not antiparallel to velocity")
	}

	rho := m.Planet.Density(s.Position.Norm())
	want := 0.5 * rho * m.Lander.DragCoef * m.Lander.BodyArea() * s.Velocity.Norm2()
	if math.Abs(d.Norm()-want)/want > 1e-12 {
		t.Errorf("drag magnitude = %v, want %v", d.Norm(), want)
	}
}

func TestDragZeroVelocity(t *testing.T) {
	m := testModel()

	s := &lander.State{
		Position: lander.Vec3{Y: -(m.Planet.Radius + 100)},
		Fuel:     1,
	}
	if d := m.Drag(s); d != (lander.Vec3{}) {
		t.Errorf("motionless lander must see zero drag, got %+v", d)
	}
}

func TestDragVacuum(t *testing.T) {
	m := testModel()

	s := &lander.State{
		Position: lander.Vec3{X: m.Planet.Radius + m.Planet.Exosphere + 1000},
		Velocity: lander.Vec3{Y: -3000},
		Fuel:     1,
	}
	if d := m.Drag(s); d.Norm() != 0 {
		t.Errorf("no drag above the exosphere, got %+v", d)
	}
}

// Identical velocity and altitude: the canopy must dominate.
func TestParachuteDragExceedsBodyDrag(t *testing.T) {
	m := testModel()

	mk := func(chute lander.ChuteStatus) *lander.State {
		return &lander.State{
			Position: lander.Vec3{Y: -(m.Planet.Radius + 8000)},
			Velocity: lander.Vec3{Y: 250},
			Fuel:     0.5,
			Chute:    chute,
		}
	}

	bare := m.Drag(mk(lander.ChuteNotDeployed)).Norm()
	deployed := m.Drag(mk(lander.ChuteDeployed)).Norm()
	lost := m.Drag(mk(lander.ChuteLost)).Norm()

	if deployed <= bare {
		t.Errorf("deployed chute drag (%v) must exceed bare drag (%v)", deployed, bare)
	}
	if lost != bare {
		t.Errorf("lost chute must not contribute drag: %v vs %v", lost, bare)
	}
}

func TestThrust(t *testing.T) {
	m := testModel()

	s := &lander.State{
		Position: lander.Vec3{Z: m.Planet.Radius + 1000},
		Fuel:     1,
		Throttle: 0.5,
		// Zero orientation: body up is world +Z.
	}
	th := m.Thrust(s)

	want := lander.Vec3{Z: 0.5 * m.Lander.MaxThrust}
	if th.Sub(want).Norm() > 1e-9 {
		t.Errorf("thrust = %+v, want %+v", th, want)
	}

	s.Throttle = 0
	if m.Thrust(s) != (lander.Vec3{}) {
		t.Error("zero throttle must produce zero thrust")
	}

	s.Throttle = 1
	s.Fuel = 0
	if m.Thrust(s) != (lander.Vec3{}) {
		t.Error("empty tank must produce zero thrust")
	}
}

func TestAccelerationComposition(t *testing.T) {
	m := testModel()

	s := &lander.State{
		Position:    lander.Vec3{Y: -(m.Planet.Radius + 10000)},
		Velocity:    lander.Vec3{Y: 150},
		Fuel:        0.8,
		Throttle:    0.3,
		Orientation: lander.Vec3{Z: 90},
	}

	net := m.Gravity(s).Add(m.Drag(s)).Add(m.Thrust(s))
	want := net.Scale(1 / m.Mass(s))
	if got := m.Acceleration(s); got.Sub(want).Norm() > 1e-12 {
		t.Errorf("acceleration = %+v, want %+v", got, want)
	}
}

func TestBurnFuel(t *testing.T) {
	m := testModel()

	s := &lander.State{Fuel: 1, Throttle: 1, Dt: 10}
	m.BurnFuel(s)

	want := 1 - m.Lander.FuelRate*10/m.Lander.FuelCapacity
	if math.Abs(s.Fuel-want) > 1e-12 {
		t.Errorf("fuel after burn = %v, want %v", s.Fuel, want)
	}

	s.Fuel = 0.001
	s.Dt = 1000
	m.BurnFuel(s)
	if s.Fuel != 0 {
		t.Errorf("fuel must clamp at zero, got %v", s.Fuel)
	}

	s2 := &lander.State{Fuel: 0.5, Throttle: 0, Dt: 100}
	m.BurnFuel(s2)
	if s2.Fuel != 0.5 {
		t.Error("idle engine must not burn fuel")
	}
}

func TestChuteOverloaded(t *testing.T) {
	m := testModel()

	slow := &lander.State{
		Position: lander.Vec3{Y: -(m.Planet.Radius + 2000)},
		Velocity: lander.Vec3{Y: 20},
		Chute:    lander.ChuteDeployed,
	}
	if m.ChuteOverloaded(slow) {
		t.Error("gentle descent should not overload the canopy")
	}

	fast := &lander.State{
		Position: lander.Vec3{Y: -(m.Planet.Radius + 2000)},
		Velocity: lander.Vec3{Y: 700},
		Chute:    lander.ChuteDeployed,
	}
	if !m.ChuteOverloaded(fast) {
		t.Error("re-entry speed should overload the canopy")
	}
}

func TestValidate(t *testing.T) {
	m := testModel()
	if err := m.Validate(); err != nil {
		t.Fatalf("reference model should validate: %v", err)
	}

	bad := testModel()
	bad.Lander.UnloadedMass = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero unloaded mass must be rejected")
	}

	bad = testModel()
	bad.Planet.Radius = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative radius must be rejected")
	}
}
