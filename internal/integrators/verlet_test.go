package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/landersim/internal/dynamics"
	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

func TestVerletBootstrapMatchesExplicitSeed(t *testing.T) {
	v := NewVerlet()

	s := &lander.State{
		Position: lander.Vec3{X: 4e6, Y: 100, Z: -3},
		Velocity: lander.Vec3{X: 10, Y: -3200, Z: 0.5},
		Dt:       0.1,
	}
	acc := lander.Vec3{X: -2.6, Y: 0.01, Z: 0}

	pos, vel, dt := s.Position, s.Velocity, s.Dt
	wantPos := pos.Add(vel.Scale(dt)).Add(acc.Scale(0.5 * dt * dt))
	wantVel := vel.Add(acc.Scale(dt))

	v.Step(s, acc)

	if s.Position != wantPos {
		t.Errorf("bootstrap position: got %+v, want %+v", s.Position, wantPos)
	}
	if s.Velocity != wantVel {
		t.Errorf("bootstrap velocity: got %+v, want %+v", s.Velocity, wantVel)
	}
}

func TestVerletResetRearms(t *testing.T) {
	v := NewVerlet()
	acc := lander.Vec3{X: 1}

	first := &lander.State{Velocity: lander.Vec3{X: 1}, Position: lander.Vec3{X: 5}, Dt: 0.5}
	v.Step(first, acc)
	v.Step(first, acc)

	v.Reset()

	again := &lander.State{Velocity: lander.Vec3{X: 1}, Position: lander.Vec3{X: 5}, Dt: 0.5}
	ref := NewVerlet()
	want := &lander.State{Velocity: lander.Vec3{X: 1}, Position: lander.Vec3{X: 5}, Dt: 0.5}
	ref.Step(want, acc)
	v.Step(again, acc)

	if again.Position != want.Position || again.Velocity != want.Velocity {
		t.Error("Reset did not rearm the bootstrap")
	}
}

func TestZeroForceLinearMotion(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			integ, err := New(name)
			if err != nil {
				t.Fatal(err)
			}

			s := &lander.State{
				Position: lander.Vec3{X: 1000, Y: -500, Z: 20},
				Velocity: lander.Vec3{X: 3, Y: 7, Z: -1},
				Dt:       0.25,
			}
			v0 := s.Velocity
			p0 := s.Position

			steps := 400
			for i := 0; i < steps; i++ {
				integ.Step(s, lander.Vec3{})
			}

			elapsed := float64(steps) * s.Dt
			wantPos := p0.Add(v0.Scale(elapsed))

			if s.Velocity.Sub(v0).Norm() > 1e-9 {
				t.Errorf("velocity changed under zero force: %+v -> %+v", v0, s.Velocity)
			}
			if s.Position.Sub(wantPos).Norm() > 1e-6 {
				t.Errorf("position not linear: got %+v, want %+v", s.Position, wantPos)
			}
		})
	}
}

func TestUnknownPolicy(t *testing.T) {
	if _, err := New("rk4"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

// Circular orbit in vacuum with the engine off: the two-step method
// must hold the radius essentially fixed over a full period while
// explicit Euler spirals outward.
func TestCircularOrbitDrift(t *testing.T) {
	p := planet.Mars().InVacuum()
	model := dynamics.NewModel(p)

	r0 := 1.2 * p.Radius
	v0 := math.Sqrt(p.Mu() / r0)
	period := 2 * math.Pi * r0 / v0
	dt := 0.1
	steps := int(period / dt)

	run := func(integ lander.Integrator) (maxDev float64, radii []float64) {
		s := &lander.State{
			Position: lander.Vec3{X: r0},
			Velocity: lander.Vec3{Y: -v0},
			Fuel:     1,
			Dt:       dt,
		}
		quarter := steps / 4
		for i := 0; i < steps; i++ {
			integ.Step(s, model.Acceleration(s))
			dev := math.Abs(s.Position.Norm()-r0) / r0
			if dev > maxDev {
				maxDev = dev
			}
			if quarter > 0 && (i+1)%quarter == 0 {
				radii = append(radii, s.Position.Norm())
			}
		}
		return maxDev, radii
	}

	verletDev, _ := run(NewVerlet())
	eulerDev, eulerRadii := run(NewEuler())

	if verletDev > 1e-6 {
		t.Errorf("verlet radius drift too large over one period: %e", verletDev)
	}
	if eulerDev < 1e-5 {
		t.Errorf("euler should drift outward, max deviation only %e", eulerDev)
	}
	if eulerDev < 100*verletDev {
		t.Errorf("euler drift (%e) should dwarf verlet drift (%e)", eulerDev, verletDev)
	}
	for i := 1; i < len(eulerRadii); i++ {
		if eulerRadii[i] < eulerRadii[i-1] {
			t.Errorf("euler radius not monotonically increasing: %.3f then %.3f",
				eulerRadii[i-1], eulerRadii[i])
		}
	}
}
