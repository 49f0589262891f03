package lander

import (
	"math"
	"testing"
)

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"normal", State{Position: Vec3{X: 4e6}, Velocity: Vec3{Y: -3247}}, true},
		{"at center", State{Velocity: Vec3{Y: 1}}, false},
		{"NaN position", State{Position: Vec3{X: math.NaN()}}, false},
		{"Inf velocity", State{Position: Vec3{X: 4e6}, Velocity: Vec3{Z: math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAltitudeAndDescentRate(t *testing.T) {
	s := State{
		Position: Vec3{Y: -3396000},
		Velocity: Vec3{Y: 50}, // toward the planet from -Y
	}

	if got := s.Altitude(3386000); math.Abs(got-10000) > 1e-6 {
		t.Errorf("Altitude = %v, want 10000", got)
	}
	if got := s.DescentRate(); math.Abs(got+50) > 1e-9 {
		t.Errorf("DescentRate = %v, want -50", got)
	}

	// Moving away: positive rate.
	s.Velocity = Vec3{Y: -50}
	if got := s.DescentRate(); math.Abs(got-50) > 1e-9 {
		t.Errorf("DescentRate = %v, want 50", got)
	}
}

func TestClamp(t *testing.T) {
	s := State{Fuel: 1.7, Throttle: -0.3}
	s.Clamp()
	if s.Fuel != 1 || s.Throttle != 0 {
		t.Errorf("Clamp: fuel %v throttle %v", s.Fuel, s.Throttle)
	}

	s = State{Fuel: -0.2, Throttle: 2}
	s.Clamp()
	if s.Fuel != 0 || s.Throttle != 1 {
		t.Errorf("Clamp: fuel %v throttle %v", s.Fuel, s.Throttle)
	}

	s = State{Fuel: 0.5, Throttle: 0.25}
	s.Clamp()
	if s.Fuel != 0.5 || s.Throttle != 0.25 {
		t.Error("Clamp must not move in-range values")
	}
}

func TestChuteStatusString(t *testing.T) {
	tests := map[ChuteStatus]string{
		ChuteNotDeployed: "not deployed",
		ChuteDeployed:    "deployed",
		ChuteLost:        "lost",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
