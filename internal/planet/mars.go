// Package planet models the environment: planetary constants and the
// atmosphere as a pure function of distance from the planet center.
package planet

import "math"

// G is the gravitational constant (m^3 kg^-1 s^-2).
const G = 6.673e-11

// Planet holds the constants the force model needs. Density follows a
// single exponential profile up to the exosphere boundary and is zero
// beyond it.
type Planet struct {
	Name           string
	Mass           float64 // kg
	Radius         float64 // m
	Exosphere      float64 // m above the surface
	SurfaceDensity float64 // kg/m^3 at zero altitude
	DensityScale   float64 // e-folding height, m
}

// Mars returns the reference planet used by the scenario catalogue.
func Mars() Planet {
	return Planet{
		Name:           "mars",
		Mass:           6.42e23,
		Radius:         3386000.0,
		Exosphere:      200000.0,
		SurfaceDensity: 0.017,
		DensityScale:   11000.0,
	}
}

// Mu returns the standard gravitational parameter G*M.
func (p Planet) Mu() float64 {
	return G * p.Mass
}

// Density returns atmospheric density at distance r from the planet
// center. r below the surface is treated as surface density; the
// caller never places the lander underground on purpose.
func (p Planet) Density(r float64) float64 {
	alt := r - p.Radius
	if alt >= p.Exosphere {
		return 0
	}
	if alt < 0 {
		alt = 0
	}
	return p.SurfaceDensity * math.Exp(-alt/p.DensityScale)
}

// InVacuum returns a copy with the atmosphere removed. Used for orbit
// tests and vacuum what-ifs.
func (p Planet) InVacuum() Planet {
	p.SurfaceDensity = 0
	return p
}
