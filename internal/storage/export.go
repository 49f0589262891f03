package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/landersim/internal/sim"
)

// ExportData is the flat JSON shape consumed by external plotting tools.
type ExportData struct {
	ID          string             `json:"id"`
	Scenario    int                `json:"scenario"`
	Description string             `json:"description"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Columns     []string           `json:"columns"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	data := ExportData{
		ID:          meta.ID,
		Scenario:    meta.Scenario,
		Description: meta.Description,
		Integrator:  meta.Integrator,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       len(times),
		Columns:     Header()[1:],
		Times:       times,
		States:      states,
		Metrics:     meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportResultJSON writes a fresh result without persisting it first.
func ExportResultJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	states := make([][]float64, len(result.States))
	for i := range result.States {
		st := &result.States[i]
		states[i] = []float64{
			st.Position.X, st.Position.Y, st.Position.Z,
			st.Velocity.X, st.Velocity.Y, st.Velocity.Z,
			st.Fuel, st.Throttle, float64(st.Chute),
		}
	}
	return ExportJSON(w, &meta, states, result.Times)
}
