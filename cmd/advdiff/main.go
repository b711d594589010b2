package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/advdiff/internal/analysis"
	"github.com/san-kum/advdiff/internal/config"
	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/integrate"
	"github.com/san-kum/advdiff/internal/solver"
	"github.com/san-kum/advdiff/internal/stencil"
	"github.com/san-kum/advdiff/internal/store"
	"github.com/san-kum/advdiff/internal/viz"
)

var (
	dataDir     string
	nX          int
	nY          int
	initName    string
	flowName    string
	diffusivity float64
	tEnd        float64
	steps       int
	integrator  string
	configFile  string
	inputFile   string
	preset      string
	profileMode string
	// plot
	showInitial bool
	// live
	frameRate     int
	stepsPerFrame int
	// converge
	convSteps int
	convTEnd  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "advdiff",
		Short: "2-D advection-diffusion solver lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".advdiff", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&profileMode, "profile", "", "write a cpu or mem profile")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-16s %dx%d %s/%s nu=%g t=%g steps=%d\n",
					name, cfg.NX, cfg.NY, cfg.Init, cfg.Flow, cfg.Diffusivity, cfg.TEnd, cfg.Steps)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&showInitial, "initial", false, "plot the initial field instead of the final one")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored field to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&showInitial, "initial", false, "export the initial field instead of the final one")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver across grid sizes",
		RunE:  benchSolver,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integrators on the same run",
		RunE:  compareIntegrators,
	}
	addConfigFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "grid-convergence study against the analytic sine solution",
		RunE:  convergeStudy,
	}
	convergeCmd.Flags().IntVar(&convSteps, "steps", 20, "fixed step count across grid levels")
	convergeCmd.Flags().Float64Var(&convTEnd, "time", 0.01, "end time")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "solver steps per frame")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, benchCmd, compareCmd, convergeCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nX, "nx", config.DefaultNX, "interior width")
	cmd.Flags().IntVar(&nY, "ny", config.DefaultNY, "interior height")
	cmd.Flags().StringVar(&initName, "init", "gauss", "initial condition (gauss, sinus, cross, cross2)")
	cmd.Flags().StringVar(&flowName, "flow", "diagonal", "flow regime (diagonal, circular, circular2)")
	cmd.Flags().Float64Var(&diffusivity, "diffusivity", config.DefaultDiffusivity, "diffusion coefficient")
	cmd.Flags().Float64Var(&tEnd, "time", config.DefaultTEnd, "simulated end time")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "time integrator (rk4, euler)")
	cmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	cmd.Flags().StringVar(&inputFile, "input", "", "legacy text input file")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
}

// resolveConfig layers preset, config file, legacy input, and explicit
// flags, in increasing priority.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if inputFile != "" {
		loaded, err := config.LoadInput(inputFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("nx") {
		cfg.NX = nX
	}
	if cmd.Flags().Changed("ny") {
		cfg.NY = nY
	}
	if cmd.Flags().Changed("init") {
		cfg.Init = initName
	}
	if cmd.Flags().Changed("flow") {
		cfg.Flow = flowName
	}
	if cmd.Flags().Changed("diffusivity") {
		cfg.Diffusivity = diffusivity
	}
	if cmd.Flags().Changed("time") {
		cfg.TEnd = tEnd
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	return cfg, nil
}

// buildProblem validates the configuration and assembles the solution
// grid and operator.
func buildProblem(cfg *config.Config) (*field.Grid, *stencil.Operator, error) {
	ic, fl, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}
	u := field.New(cfg.NX, cfg.NY)
	u.Populate(ic)
	op := stencil.NewOperator(stencil.NewCoeffs(cfg.NX, cfg.NY, fl, cfg.Diffusivity))
	return u, op, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	u, op, err := buildProblem(cfg)
	if err != nil {
		return err
	}
	integ, err := integrate.ByName(integrator)
	if err != nil {
		return err
	}

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode: %q", profileMode)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	uInit := u.Clone()

	s := solver.New(op, integ)
	s.AddMetric(solver.NewMass())
	s.AddMetric(solver.NewExtremes())

	fmt.Printf("running %s/%s on %dx%d (%d steps to t=%g)...\n",
		cfg.Init, cfg.Flow, cfg.NX, cfg.NY, cfg.Steps, cfg.TEnd)

	res, err := s.Run(context.Background(), u, solver.Config{TEnd: cfg.TEnd, Steps: cfg.Steps})
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, res, uInit, u)
	if err != nil {
		return err
	}

	fmt.Printf("tWall     : %v\n", res.Wall)
	fmt.Printf("tWall/DoF : %.3e s\n", res.WallPerDoF)
	fmt.Printf("run id    : %s\n", runID)
	for name, val := range res.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRID\tINIT\tFLOW\tNU\tT_END\tSTEPS\tWALL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%g\t%g\t%d\t%.3fs\n",
			run.ID, run.NX, run.NY, run.Init, run.Flow,
			run.Diffusivity, run.TEnd, run.Steps, run.WallSeconds)
	}
	return w.Flush()
}

func loadStoredField(runID string) (*field.Grid, *store.RunMetadata, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	var g *field.Grid
	if showInitial {
		g, err = st.LoadInitial(runID)
	} else {
		g, err = st.LoadFinal(runID)
	}
	if err != nil {
		return nil, nil, err
	}
	return g, meta, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	g, meta, err := loadStoredField(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s/%s, %dx%d)\n\n", meta.ID, meta.Init, meta.Flow, meta.NX, meta.NY)
	fmt.Println(viz.Heatmap(g, 40, 20))
	fmt.Println(viz.CrossSections(g, 70, 10))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	g, _, err := loadStoredField(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "u"}); err != nil {
		return err
	}
	var writeErr error
	g.Each(func(x, y int, v float64) {
		if writeErr != nil {
			return
		}
		writeErr = w.Write([]string{
			strconv.Itoa(x),
			strconv.Itoa(y),
			strconv.FormatFloat(v, 'g', -1, 64),
		})
	})
	return writeErr
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{32, 64, 128, 256}
	benchSteps := 50

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tWALL\tWALL/DOF")

	for _, n := range sizes {
		u := field.New(n, n)
		u.Populate(field.InitGauss)
		op := stencil.NewOperator(stencil.NewCoeffs(n, n, stencil.FlowDiagonal, config.DefaultDiffusivity))
		s := solver.New(op, integrate.NewRK4())

		// dt scaled with h to stay inside the explicit stability limit
		dt := 0.2 / float64(n)
		res, err := s.Run(context.Background(), u, solver.Config{TEnd: dt * float64(benchSteps), Steps: benchSteps})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.3e s\n", n, n, res.Steps, res.Wall, res.WallPerDoF)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results := make(map[string]*field.Grid)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tWALL\tMASS\tMAX_ABS")

	for _, name := range []string{"rk4", "euler"} {
		u, op, err := buildProblem(cfg)
		if err != nil {
			return err
		}
		integ, err := integrate.ByName(name)
		if err != nil {
			return err
		}

		s := solver.New(op, integ)
		s.AddMetric(solver.NewMass())
		s.AddMetric(solver.NewExtremes())

		res, err := s.Run(context.Background(), u, solver.Config{TEnd: cfg.TEnd, Steps: cfg.Steps})
		if err != nil {
			return err
		}
		results[name] = u
		fmt.Fprintf(w, "%s\t%v\t%.6g\t%.6g\n", name, res.Wall, res.Metrics["mass"], res.Metrics["max_abs"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if diff, err := analysis.L2Diff(results["rk4"], results["euler"]); err == nil {
		fmt.Printf("\nL2(rk4 - euler) = %.3e\n", diff)
	}
	return nil
}

func convergeStudy(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 64}

	start := time.Now()
	samples, err := analysis.Convergence(context.Background(), sizes, convTEnd, convSteps, 0)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tERR_L2\tERR_MAX")
	for _, s := range samples {
		fmt.Fprintf(w, "%dx%d\t%.6e\t%.6e\n", s.N, s.N, s.ErrL2, s.ErrMax)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for i, order := range analysis.Orders(samples) {
		fmt.Printf("order %d->%d: %.2f\n", samples[i].N, samples[i+1].N, order)
	}
	fmt.Printf("elapsed: %v\n", time.Since(start))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	u, op, err := buildProblem(cfg)
	if err != nil {
		return err
	}
	integ, err := integrate.ByName(integrator)
	if err != nil {
		return err
	}

	dt := cfg.TEnd / float64(cfg.Steps)
	m := viz.NewModel(op, integ, u, dt, cfg.Steps, stepsPerFrame, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
