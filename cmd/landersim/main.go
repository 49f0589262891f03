package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/landersim/internal/config"
	"github.com/san-kum/landersim/internal/control"
	"github.com/san-kum/landersim/internal/dynamics"
	"github.com/san-kum/landersim/internal/integrators"
	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/metrics"
	"github.com/san-kum/landersim/internal/planet"
	"github.com/san-kum/landersim/internal/scenario"
	"github.com/san-kum/landersim/internal/sim"
	"github.com/san-kum/landersim/internal/storage"
	"github.com/san-kum/landersim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	autopilot  bool
	stabilize  bool
	chute      bool
	kh         float64
	kp         float64
	deadband   float64
	// Config file
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "landersim",
		Short: "mars lander descent and orbit simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".landersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, verlet)")
	runCmd.Flags().BoolVar(&autopilot, "autopilot", false, "engage the descent autopilot")
	runCmd.Flags().BoolVar(&stabilize, "stabilize", false, "keep the thruster pointing radially out")
	runCmd.Flags().BoolVar(&chute, "chute", false, "start with the parachute deployed")
	runCmd.Flags().Float64Var(&kh, "kh", control.DefaultKh, "autopilot altitude gain")
	runCmd.Flags().Float64Var(&kp, "kp", control.DefaultKp, "autopilot proportional gain")
	runCmd.Flags().Float64Var(&deadband, "deadband", control.DefaultDeadband, "autopilot deadband")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list the scenario catalogue",
		RunE:  listScenarios,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "fly a scenario with a live view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 uses the scenario's)")
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, verlet)")
	liveCmd.Flags().BoolVar(&autopilot, "autopilot", false, "engage the descent autopilot")
	liveCmd.Flags().BoolVar(&stabilize, "stabilize", false, "keep the thruster pointing radially out")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "compare integrators on the same scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	rootCmd.AddCommand(runCmd, scenariosCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, liveCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseScenario(arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("scenario must be a number 0-%d: %q", scenario.Count-1, arg)
	}
	return idx, nil
}

func initState(p planet.Planet, idx int) (scenario.Scenario, lander.State, error) {
	scn, err := scenario.Get(p, idx)
	if err != nil {
		return scenario.Scenario{}, lander.State{}, err
	}
	if scn.Reserved() {
		return scenario.Scenario{}, lander.State{}, fmt.Errorf("scenario %d is a reserved slot", idx)
	}

	var st lander.State
	if err := scenario.Init(p, idx, &st); err != nil {
		return scenario.Scenario{}, lander.State{}, err
	}
	return scn, st, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	idx, err := parseScenario(args[0])
	if err != nil {
		return err
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("dt") && cfg.Dt > 0 {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("integrator") {
			integrator = cfg.Integrator
		}
		if !cmd.Flags().Changed("autopilot") && cfg.Autopilot != nil {
			autopilot = *cfg.Autopilot
		}
		if !cmd.Flags().Changed("stabilize") && cfg.Stabilize != nil {
			stabilize = *cfg.Stabilize
		}
		if !cmd.Flags().Changed("kh") {
			kh = cfg.Gains.Kh
		}
		if !cmd.Flags().Changed("kp") {
			kp = cfg.Gains.Kp
		}
		if !cmd.Flags().Changed("deadband") {
			deadband = cfg.Gains.Deadband
		}
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	p := planet.Mars()
	scn, st, err := initState(p, idx)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dt") {
		st.Dt = dt
	}
	if cmd.Flags().Changed("autopilot") || autopilot {
		st.AutopilotEnabled = autopilot
	}
	if cmd.Flags().Changed("stabilize") || stabilize {
		st.StabilizedAttitude = stabilize
	}
	if chute {
		st.Chute = lander.ChuteDeployed
	}

	integ, err := integrators.New(integrator)
	if err != nil {
		return err
	}

	model := dynamics.NewModel(p)
	simul := sim.New(model, integ)

	ap := simul.Autopilot()
	ap.Kh = kh
	ap.Kp = kp
	ap.Deadband = deadband

	simul.AddMetric(metrics.NewRadiusDrift())
	simul.AddMetric(metrics.NewEnergyDrift(p))
	simul.AddMetric(metrics.NewMinAltitude(p.Radius))
	simul.AddMetric(metrics.NewFuelUsed())
	simul.AddMetric(metrics.NewControlEffort())

	fmt.Printf("running scenario %d: %s\n", idx, scn.Description)
	start := time.Now()

	result, err := simul.Run(context.Background(), &st, sim.Config{
		Duration:      duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := store.Save(storage.RunMetadata{
		Scenario:    idx,
		Description: scn.Description,
		Dt:          st.Dt,
		Duration:    duration,
		Integrator:  integrator,
		Autopilot:   st.AutopilotEnabled,
		Stabilize:   st.StabilizedAttitude,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	p := planet.Mars()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tDESCRIPTION")

	for i, desc := range scenario.Descriptions(p) {
		if desc == "" {
			desc = "(reserved)"
		}
		fmt.Fprintf(w, "%d\t%s\n", i, desc)
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tINTEG\tAUTO")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1fs\t%.3fs\t%s\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Autopilot,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := store.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %d (%s)\n", meta.Scenario, meta.Description)
	fmt.Printf("samples: %d\n\n", len(states))

	radius := planet.Mars().Radius

	series := []struct {
		caption string
		extract func(row []float64) float64
	}{
		{"altitude (m)", func(r []float64) float64 {
			return math.Sqrt(r[0]*r[0]+r[1]*r[1]+r[2]*r[2]) - radius
		}},
		{"speed (m/s)", func(r []float64) float64 {
			return math.Sqrt(r[3]*r[3] + r[4]*r[4] + r[5]*r[5])
		}},
		{"fuel fraction", func(r []float64) float64 { return r[6] }},
		{"throttle", func(r []float64) float64 { return r[7] }},
	}

	for _, s := range series {
		data := make([]float64, 0, len(states))
		for _, row := range states {
			if len(row) < 8 {
				continue
			}
			data = append(data, s.extract(row))
		}
		if len(data) == 0 {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	states, times, err := store.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(storage.Header()); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := store.LoadStates(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, states, times)
}

func runLive(cmd *cobra.Command, args []string) error {
	idx, err := parseScenario(args[0])
	if err != nil {
		return err
	}

	p := planet.Mars()
	scn, st, err := initState(p, idx)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dt") && dt > 0 {
		st.Dt = dt
	}
	if cmd.Flags().Changed("autopilot") {
		st.AutopilotEnabled = autopilot
	}
	if cmd.Flags().Changed("stabilize") {
		st.StabilizedAttitude = stabilize
	}

	integ, err := integrators.New(integrator)
	if err != nil {
		return err
	}

	return tui.Run(scn, dynamics.NewModel(p), integ, st)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	idx, err := parseScenario(args[0])
	if err != nil {
		return err
	}

	p := planet.Mars()
	scn, _, err := initState(p, idx)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on scenario %d: %s (dt=%.3f, duration=%.1fs)\n\n",
		idx, scn.Description, dt, duration)
	fmt.Printf("%-10s  %-14s  %-14s  %-14s  %-10s\n",
		"integrator", "radius_drift", "energy_drift", "min_altitude", "time_ms")
	fmt.Println(strings.Repeat("-", 70))

	for _, name := range integrators.Names() {
		integ, err := integrators.New(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		var st lander.State
		if err := scenario.Init(p, idx, &st); err != nil {
			return err
		}
		st.Dt = dt

		simul := sim.New(dynamics.NewModel(p), integ)
		simul.AddMetric(metrics.NewRadiusDrift())
		simul.AddMetric(metrics.NewEnergyDrift(p))
		simul.AddMetric(metrics.NewMinAltitude(p.Radius))

		start := time.Now()
		result, err := simul.Run(context.Background(), &st, sim.Config{Duration: duration})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-10s  %14.6e  %14.6e  %14.1f  %10.2f\n",
			name,
			result.Metrics["radius_drift"],
			result.Metrics["energy_drift"],
			result.Metrics["min_altitude"],
			float64(elapsed.Microseconds())/1000)
	}

	return nil
}
