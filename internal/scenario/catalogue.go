// Package scenario holds the catalogue of named initial-condition
// presets. A scenario is selected once at run start and overwrites the
// lander state; the catalogue itself is immutable.
package scenario

import (
	"fmt"

	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/planet"
)

// Count is the size of the catalogue, including reserved slots.
const Count = 10

// Scenario is one preset: an initial state plus the two mode flags.
// A zero Scenario (empty description) is a reserved slot.
type Scenario struct {
	Description string

	Position    lander.Vec3
	Velocity    lander.Vec3
	Orientation lander.Vec3
	Dt          float64
	Chute       lander.ChuteStatus

	StabilizedAttitude bool
	AutopilotEnabled   bool
}

// Reserved reports whether the slot is an unused placeholder.
func (sc Scenario) Reserved() bool {
	return sc.Description == ""
}

func catalogue(p planet.Planet) [Count]Scenario {
	r := p.Radius
	return [Count]Scenario{
		0: {
			Description: "circular orbit",
			Position:    lander.Vec3{X: 1.2 * r},
			Velocity:    lander.Vec3{Y: -3247.087385863725},
			Orientation: lander.Vec3{Y: 90},
			Dt:          0.1,
		},
		1: {
			Description:        "descent from 10km",
			Position:           lander.Vec3{Y: -(r + 10000.0)},
			Orientation:        lander.Vec3{Z: 90},
			Dt:                 0.1,
			StabilizedAttitude: true,
		},
		2: {
			Description: "elliptical orbit, thrust changes orbital plane",
			Position:    lander.Vec3{Z: 1.2 * r},
			Velocity:    lander.Vec3{X: 3500.0},
			Orientation: lander.Vec3{Z: 90},
			Dt:          0.1,
		},
		3: {
			Description: "polar launch at escape velocity (but drag prevents escape)",
			Position:    lander.Vec3{Z: r + 0.5}, // half a lander size above the pole
			Velocity:    lander.Vec3{Z: 5027.0},
			Dt:          0.1,
		},
		4: {
			Description: "elliptical orbit that clips the atmosphere and decays",
			Position:    lander.Vec3{Z: r + 100000.0},
			Velocity:    lander.Vec3{X: 4000.0},
			Orientation: lander.Vec3{Y: 90},
			Dt:          0.1,
		},
		5: {
			Description:        "descent from 200km",
			Position:           lander.Vec3{Y: -(r + p.Exosphere)},
			Orientation:        lander.Vec3{Z: 90},
			Dt:                 0.1,
			StabilizedAttitude: true,
		},
	}
}

// Get returns the scenario at idx. Reserved slots are returned as-is;
// an index outside [0,Count) is an error.
func Get(p planet.Planet, idx int) (Scenario, error) {
	if idx < 0 || idx >= Count {
		return Scenario{}, fmt.Errorf("%w: %d (valid 0-%d)", lander.ErrScenarioRange, idx, Count-1)
	}
	return catalogue(p)[idx], nil
}

// Init overwrites the state with the scenario at idx. Reserved indices
// leave the state untouched and return nil; out-of-range indices are
// reported as an error, never defaulted.
func Init(p planet.Planet, idx int, s *lander.State) error {
	sc, err := Get(p, idx)
	if err != nil {
		return err
	}
	if sc.Reserved() {
		return nil
	}

	s.Position = sc.Position
	s.Velocity = sc.Velocity
	s.Orientation = sc.Orientation
	s.Dt = sc.Dt
	s.Chute = sc.Chute
	s.StabilizedAttitude = sc.StabilizedAttitude
	s.AutopilotEnabled = sc.AutopilotEnabled
	s.Fuel = 1.0
	s.Throttle = 0
	s.Time = 0
	return nil
}

// Descriptions returns the help strings for the whole catalogue, empty
// for reserved slots.
func Descriptions(p planet.Planet) []string {
	out := make([]string, Count)
	for i, sc := range catalogue(p) {
		out[i] = sc.Description
	}
	return out
}
