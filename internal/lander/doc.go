// Package lander provides the core types for the lander simulation.
//
// The package defines the fundamental vocabulary shared by the force
// model, the integrators and the simulation loop:
//
//   - [Vec3]: 3-component vector in planet-centered Cartesian coordinates
//   - [State]: full lander state (pose, fuel, throttle, parachute, clock)
//   - [Integrator]: fixed-step position/velocity update
//   - [Metric]: per-tick observation aggregated over a run
//
// # Thread Safety
//
// A State and the integrator driving it are owned by exactly one
// simulation loop. Ticks are strictly sequential; nothing in this
// package is safe for concurrent mutation.
package lander
