// Package sim drives the lander through time: one force evaluation and
// one integrator step per tick, followed by the optional autopilot and
// attitude stabilizer.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/landersim/internal/control"
	"github.com/san-kum/landersim/internal/dynamics"
	"github.com/san-kum/landersim/internal/lander"
)

// Config bounds a run.
type Config struct {
	Duration      float64 // s
	ValidateState bool    // reject NaN/Inf before it corrupts the state
}

// Result is the recorded history of a run.
type Result struct {
	States  []lander.State
	Times   []float64
	Metrics map[string]float64
	Steps   int
}

// Simulator owns the state for the duration of a run. Not safe for
// concurrent use; ticks are strictly sequential.
type Simulator struct {
	model     *dynamics.Model
	integ     lander.Integrator
	autopilot *control.Autopilot
	metrics   []lander.Metric
	observers []lander.Observer
	step      int
}

func New(model *dynamics.Model, integ lander.Integrator) *Simulator {
	return &Simulator{
		model:     model,
		integ:     integ,
		autopilot: control.NewAutopilot(model.Planet.Radius),
	}
}

func (s *Simulator) AddMetric(m lander.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o lander.Observer) { s.observers = append(s.observers, o) }

// Autopilot exposes the controller for gain tuning before a run.
func (s *Simulator) Autopilot() *control.Autopilot { return s.autopilot }

// Reset rearms the integrator history and the step counter. Call it
// whenever the state is reinitialized to a new scenario.
func (s *Simulator) Reset() {
	s.integ.Reset()
	s.step = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick advances the state by one fixed step: net acceleration from the
// force model, integrator update, fuel burn, parachute check, then the
// optional autopilot and stabilizer reacting to the state just
// produced. Fails only on degenerate input, before any mutation.
func (s *Simulator) Tick(st *lander.State) error {
	if st.Dt <= 0 {
		return fmt.Errorf("%w: dt %v", lander.ErrParameterBounds, st.Dt)
	}
	if st.Position.Norm2() == 0 {
		return &lander.SimError{Step: s.step, Time: st.Time, Wrapped: lander.ErrDegeneratePosition}
	}
	if !st.Position.IsFinite() || !st.Velocity.IsFinite() {
		return &lander.SimError{Step: s.step, Time: st.Time, Wrapped: lander.ErrInvalidState}
	}

	acc := s.model.Acceleration(st)
	s.integ.Step(st, acc)
	s.model.BurnFuel(st)

	if st.Chute == lander.ChuteDeployed && s.model.ChuteOverloaded(st) {
		st.Chute = lander.ChuteLost
	}

	if st.AutopilotEnabled {
		s.autopilot.Update(st)
	}
	if st.StabilizedAttitude {
		dynamics.Stabilize(st)
	}

	st.Clamp()
	st.Time += st.Dt
	s.step++

	for _, m := range s.metrics {
		m.Observe(st)
	}
	for _, o := range s.observers {
		o.OnTick(st)
	}
	return nil
}

// Run ticks the state until the configured duration elapses, recording
// every sample. The initial state is recorded at index 0.
func (s *Simulator) Run(ctx context.Context, st *lander.State, cfg Config) (*Result, error) {
	if err := s.validate(st, cfg); err != nil {
		return nil, err
	}
	s.Reset()

	steps := int(cfg.Duration / st.Dt)
	result := &Result{
		States:  make([]lander.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}
	result.States = append(result.States, *st)
	result.Times = append(result.Times, st.Time)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Tick(st); err != nil {
			return result, err
		}
		if cfg.ValidateState && !st.IsValid() {
			return result, &lander.SimError{Step: s.step, Time: st.Time, Wrapped: lander.ErrInvalidState}
		}

		result.States = append(result.States, *st)
		result.Times = append(result.Times, st.Time)
		result.Steps++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) validate(st *lander.State, cfg Config) error {
	if st.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", lander.ErrParameterBounds, st.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", lander.ErrParameterBounds, cfg.Duration)
	}
	if err := s.model.Validate(); err != nil {
		return err
	}
	if !st.IsValid() {
		if st.Position.Norm2() == 0 {
			return lander.ErrDegeneratePosition
		}
		return lander.ErrInvalidState
	}
	return nil
}
