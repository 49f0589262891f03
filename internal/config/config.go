// Package config loads run configuration from YAML files, with CLI
// flags taking precedence at the command layer.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/landersim/internal/control"
	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/scenario"
)

const (
	DefaultDt         = 0.1
	DefaultDuration   = 300.0
	DefaultIntegrator = "verlet"
)

type Config struct {
	Scenario   int     `yaml:"scenario"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"` // 0 means use the scenario's step
	Duration   float64 `yaml:"duration"`

	// Mode overrides; nil keeps the scenario's flag.
	Autopilot *bool `yaml:"autopilot"`
	Stabilize *bool `yaml:"stabilize"`

	Gains GainsConfig `yaml:"gains"`
}

type GainsConfig struct {
	Kh       float64 `yaml:"kh"`
	Kp       float64 `yaml:"kp"`
	Deadband float64 `yaml:"deadband"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   1,
		Integrator: DefaultIntegrator,
		Duration:   DefaultDuration,
		Gains: GainsConfig{
			Kh:       control.DefaultKh,
			Kp:       control.DefaultKp,
			Deadband: control.DefaultDeadband,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values outside physical sense before a run starts.
func (c *Config) Validate() error {
	if c.Scenario < 0 || c.Scenario >= scenario.Count {
		return fmt.Errorf("%w: scenario %d", lander.ErrScenarioRange, c.Scenario)
	}
	if c.Dt < 0 {
		return fmt.Errorf("%w: dt %v", lander.ErrParameterBounds, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration %v", lander.ErrParameterBounds, c.Duration)
	}
	if c.Gains.Deadband < 0 || c.Gains.Deadband > 1 {
		return fmt.Errorf("%w: deadband %v", lander.ErrParameterBounds, c.Gains.Deadband)
	}
	return nil
}

// Apply overlays the config onto a scenario-initialized state.
func (c *Config) Apply(s *lander.State) {
	if c.Dt > 0 {
		s.Dt = c.Dt
	}
	if c.Autopilot != nil {
		s.AutopilotEnabled = *c.Autopilot
	}
	if c.Stabilize != nil {
		s.StabilizedAttitude = *c.Stabilize
	}
}
