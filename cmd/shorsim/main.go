package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/shorsim/internal/analysis"
	"github.com/san-kum/shorsim/internal/config"
	"github.com/san-kum/shorsim/internal/export"
	"github.com/san-kum/shorsim/internal/logging"
	"github.com/san-kum/shorsim/internal/metrics"
	"github.com/san-kum/shorsim/internal/optim"
	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
	"github.com/san-kum/shorsim/internal/storage"
	"github.com/san-kum/shorsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	seed        uint64
	maxBase     int
	maxAttempts int
	registerA   int
	workers     int
	threshold   int
	logLevel    string
	pretty      bool
	// ensemble
	runs        int
	concurrency int
	// attempt
	attemptIdx int
	noSave     bool
	topK       int
	// sweep
	widths []int
	// export
	outFile  string
	spectrum bool
)

// main registers the shorsim commands and exits with status 1 when a
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "shorsim",
		Short:         "state-vector simulation of Shor's factoring algorithm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().IntVar(&maxBase, "max-base", config.DefaultMaxBase, "try bases a < max-base")
	rootCmd.PersistentFlags().IntVar(&maxAttempts, "attempts", config.DefaultMaxAttempts, "attempts per base")
	rootCmd.PersistentFlags().IntVar(&registerA, "register-a", 0, "register A width (0 = 2⌈log₂ N⌉)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "gate engine workers (0 = host default)")
	rootCmd.PersistentFlags().IntVar(&threshold, "threshold", config.DefaultParallelThreshold, "minimum amplitudes for parallel gate application")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "human-readable logs")

	factorCmd := &cobra.Command{
		Use:   "factor [N]",
		Short: "factor N",
		Args:  cobra.MaximumNArgs(1),
		RunE:  factorNumber,
	}
	factorCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	attemptCmd := &cobra.Command{
		Use:   "attempt [N] [a]",
		Short: "run a single attempt with base a",
		Args:  cobra.ExactArgs(2),
		RunE:  runAttempt,
	}
	attemptCmd.Flags().IntVar(&attemptIdx, "index", 0, "attempt index (selects the seed)")
	attemptCmd.Flags().IntVar(&topK, "top", 8, "outcomes to list")
	attemptCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [N] [a]",
		Short: "run many independent attempts and tally outcomes",
		Args:  cobra.ExactArgs(2),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "number of attempts")
	ensembleCmd.Flags().IntVar(&concurrency, "concurrency", 0, "attempts in flight (0 = unlimited)")

	qubitsCmd := &cobra.Command{
		Use:   "qubits [N]",
		Short: "show register sizing for N",
		Args:  cobra.ExactArgs(1),
		RunE:  showQubits,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tMAX_BASE\tATTEMPTS\tSEED\tREGISTER_A")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", name, p.N, p.MaxBase, p.MaxAttempts, p.Seed, p.RegisterA)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the register A distribution of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "peak and spectrum analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&topK, "top", 8, "outcomes to list")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the register A distribution to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the register A distribution to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	exportSVGCmd.Flags().BoolVar(&spectrum, "spectrum", false, "draw the power spectrum instead of the distribution")

	sweepCmd := &cobra.Command{
		Use:   "sweep [N]",
		Short: "grid search bases and register A widths by success rate",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepBases,
	}
	sweepCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "attempts per grid point")
	sweepCmd.Flags().IntSliceVar(&widths, "widths", nil, "register A widths (default: 2⌈log₂ N⌉)")

	stepCmd := &cobra.Command{
		Use:   "step [N] [a]",
		Short: "step through one attempt interactively",
		Args:  cobra.ExactArgs(2),
		RunE:  stepInteractive,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [N]",
		Short: "time each stage with serial and parallel engines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchStages,
	}

	rootCmd.AddCommand(factorCmd, attemptCmd, ensembleCmd, qubitsCmd, presetsCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportCSVCmd, exportSVGCmd, sweepCmd, stepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then preset, then config file, then flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-base") {
		cfg.MaxBase = maxBase
	}
	if flags.Changed("attempts") {
		cfg.MaxAttempts = maxAttempts
	}
	if flags.Changed("register-a") {
		cfg.RegisterA = registerA
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = workers
	}
	if flags.Changed("threshold") {
		cfg.Engine.ParallelThreshold = threshold
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("pretty") {
		cfg.Log.Pretty = pretty
	}
	if flags.Lookup("runs") != nil && flags.Changed("runs") {
		cfg.Ensemble.Runs = runs
	}
	if flags.Lookup("concurrency") != nil && flags.Changed("concurrency") {
		cfg.Ensemble.Concurrency = concurrency
	}

	return cfg, nil
}

// setup loads the config, applies N from args when given, validates, and
// builds the logger.
func setup(cmd *cobra.Command, args []string) (*config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, zerolog.Nop(), fmt.Errorf("invalid N %q: %w", args[0], err)
		}
		cfg.N = n
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logging.SetGlobalLogger(logger)
	return cfg, logger, nil
}

func parseBase(arg string) (int, error) {
	a, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid base %q: %w", arg, err)
	}
	return a, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func newFactorizer(cfg *config.Config, logger zerolog.Logger) *shor.Factorizer {
	f := shor.New(cfg.Factorizer(logger))
	f.AddObserver(shor.LogObserver{Logger: logger})
	for _, m := range metrics.Default() {
		f.AddMetric(m)
	}
	return f
}

func saveRun(cfg *config.Config, logger zerolog.Logger, meta storage.RunMetadata, dist []float64) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		logger.Warn().Err(err).Msg("cannot create data directory")
		return
	}
	id, err := st.Save(meta, dist)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot save run")
		return
	}
	fmt.Printf("run id: %s\n", id)
}

func factorNumber(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	res, err := newFactorizer(cfg, logger).Factor(ctx, cfg.N)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%d = %d × %d\n", res.N, res.P, res.Q)
	if res.Classical {
		fmt.Println("method: classical (even N)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "base\t%d\n", res.Base)
	fmt.Fprintf(w, "period\t%d\n", res.Period)
	fmt.Fprintf(w, "measured c\t%d / %d\n", res.C, res.Sizing.Domain())
	fmt.Fprintf(w, "measured y\t%d\n", res.Y)
	fmt.Fprintf(w, "attempts\t%d\n", res.Attempts)
	fmt.Fprintf(w, "qubits\t%d simulated, %d total\n", res.Sizing.Simulated(), res.Sizing.Total())
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	if err := w.Flush(); err != nil {
		return err
	}

	printMetrics(res.Last.Metrics)

	if !noSave {
		saveRun(cfg, logger, storage.RunMetadata{
			Command:   "factor",
			N:         res.N,
			Base:      res.Base,
			Seed:      res.Last.Seed,
			RegisterA: res.Sizing.RegisterA,
			RegisterB: res.Sizing.RegisterB,
			Attempts:  res.Attempts,
			Outcome:   period.Factored.String(),
			Factors:   [2]int{res.P, res.Q},
			Period:    res.Period,
			C:         res.C,
			Y:         res.Y,
			Metrics:   res.Last.Metrics,
		}, res.Last.Spectrum)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("\nmetrics:")
	for _, name := range metrics.Names() {
		if v, ok := m[name]; ok {
			fmt.Printf("  %s: %.6g\n", name, v)
		}
	}
}

func runAttempt(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args[:1])
	if err != nil {
		return err
	}
	a, err := parseBase(args[1])
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := newFactorizer(cfg, logger).Attempt(ctx, cfg.N, a, attemptIdx)
	if err != nil {
		return err
	}
	ex := res.Extraction

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "N\t%d\n", cfg.N)
	fmt.Fprintf(w, "a\t%d\n", a)
	fmt.Fprintf(w, "seed\t%d\n", res.Seed)
	fmt.Fprintf(w, "y\t%d\n", res.Y)
	fmt.Fprintf(w, "c\t%d / %d\n", res.C, sz.Domain())
	fmt.Fprintf(w, "continued fraction\t%v\n", ex.Coefficients)
	fmt.Fprintf(w, "convergents\t%s\n", formatConvergents(ex.Convergents))
	fmt.Fprintf(w, "outcome\t%s\n", ex.Outcome)
	if ex.Found() {
		fmt.Fprintf(w, "period\t%d\n", ex.Period)
	}
	if ex.Outcome == period.Factored {
		fmt.Fprintf(w, "factors\t%d × %d\n", ex.Factors[0], ex.Factors[1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmost likely outcomes after QFT:")
	for _, line := range viz.FormatTop(res.Spectrum, topK) {
		fmt.Println("  " + line)
	}
	printMetrics(res.Metrics)

	if !noSave {
		saveRun(cfg, logger, storage.RunMetadata{
			Command:   "attempt",
			N:         cfg.N,
			Base:      a,
			Seed:      res.Seed,
			RegisterA: sz.RegisterA,
			RegisterB: sz.RegisterB,
			Attempts:  1,
			Outcome:   ex.Outcome.String(),
			Factors:   ex.Factors,
			Period:    ex.Period,
			C:         res.C,
			Y:         res.Y,
			Metrics:   res.Metrics,
		}, res.Spectrum)
	}
	return nil
}

func formatConvergents(cvs []period.Convergent) string {
	parts := make([]string, len(cvs))
	for i, cv := range cvs {
		parts[i] = fmt.Sprintf("%d/%d", cv.Num, cv.Den)
	}
	return strings.Join(parts, " ")
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args[:1])
	if err != nil {
		return err
	}
	a, err := parseBase(args[1])
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	e := shor.NewEnsemble(sz, cfg.Ensemble.Runs, cfg.Seed)
	e.Concurrency = cfg.Ensemble.Concurrency
	e.Engine = cfg.NewEngine()
	e.NewMetrics = metrics.Default

	logger.Info().Int("n", cfg.N).Int("a", a).Int("runs", cfg.Ensemble.Runs).Msg("running ensemble")
	start := time.Now()
	results, err := e.Run(ctx, a)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	counts := make(map[period.Outcome]int)
	periods := make(map[int]int)
	hist := make([]float64, sz.Domain())
	for _, res := range results {
		counts[res.Extraction.Outcome]++
		if res.Extraction.Found() {
			periods[res.Extraction.Period]++
		}
		hist[res.C]++
	}

	fmt.Printf("%d attempts of N=%d a=%d in %v\n\n", len(results), cfg.N, a, elapsed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OUTCOME\tCOUNT\tFRACTION")
	for _, o := range []period.Outcome{period.Factored, period.TrivialFactors, period.OddPeriod, period.NoPeriod} {
		fmt.Fprintf(w, "%s\t%d\t%.3f\n", o, counts[o], float64(counts[o])/float64(len(results)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(periods) > 0 {
		fmt.Println("\nperiods found:")
		for r, n := range periods {
			fmt.Printf("  r=%d: %d (expected peaks %v)\n", r, n, analysis.ExpectedPeaks(sz.Domain(), r))
		}
	}

	fmt.Println("\nmeasured c:")
	fmt.Println("  " + viz.SparklineChart(viz.Downsample(hist, 64), 64))
	return nil
}

func showQubits(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, args)
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "N\t%d\n", sz.N)
	fmt.Fprintf(w, "register A (m)\t%d\n", sz.RegisterA)
	fmt.Fprintf(w, "register B (n)\t%d\n", sz.RegisterB)
	fmt.Fprintf(w, "simulated qubits\t%d\n", sz.Simulated())
	fmt.Fprintf(w, "total qubits\t%d\n", sz.Total())
	fmt.Fprintf(w, "amplitudes\t%d\n", 1<<sz.Simulated())
	fmt.Fprintf(w, "state memory\t%.1f MiB\n", float64(int64(16)<<sz.Simulated())/(1<<20))
	fmt.Fprintf(w, "bases\t%v\n", shor.Bases(sz.N, cfg.MaxBase))
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCMD\tN\tBASE\tOUTCOME\tFACTORS\tPERIOD\tTIME")

	for _, run := range runs {
		factors := "-"
		if run.Factors[0] > 0 {
			factors = fmt.Sprintf("%d×%d", run.Factors[0], run.Factors[1])
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Command,
			run.N,
			run.Base,
			run.Outcome,
			factors,
			run.Period,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func openRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, []float64, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	dist, err := st.LoadDistribution(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, dist, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, dist, err := openRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(dist) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("N=%d a=%d c=%d outcome=%s\n\n", meta.N, meta.Base, meta.C, meta.Outcome)

	fmt.Println(viz.PlotDistribution(dist, 80, 12, "register A after QFT"))
	if meta.Period > 0 {
		fmt.Printf("\nexpected peaks for r=%d: %v\n", meta.Period, analysis.ExpectedPeaks(len(dist), meta.Period))
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, dist, err := openRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(dist) == 0 {
		return fmt.Errorf("no data")
	}
	Q := len(dist)

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("N=%d a=%d Q=%d\n\n", meta.N, meta.Base, Q)

	// the distribution repeats every Q/r, so its spectrum peaks at bin r
	ps := analysis.PowerSpectrum(dist)
	best := 0
	for i := 1; i < len(ps); i++ {
		if best == 0 || ps[i] > ps[best] {
			best = i
		}
	}
	fmt.Println(viz.PlotDistribution(ps, 80, 10, "spectrum of the register A distribution"))
	fmt.Printf("\ndominant bin: %d (period estimate)\n", best)
	fmt.Printf("entropy: %.3f bits of %d\n", metrics.Bits(dist), meta.RegisterA)

	if meta.Period > 0 {
		fmt.Printf("mass within ±1 of expected peaks (r=%d): %.4f\n", meta.Period, analysis.PeakMass(dist, meta.Period, 1))
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "C\tPROBABILITY\tCONVERGENTS\tOUTCOME")
	for _, o := range analysis.TopOutcomes(dist, topK) {
		if o.Probability < quantum.Tolerance {
			break
		}
		outcome := "-"
		cvs := "-"
		if ex, err := period.Extract(o.Value, Q, meta.N, meta.Base); err == nil {
			outcome = ex.Outcome.String()
			cvs = formatConvergents(ex.Convergents)
		}
		fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\n", o.Value, o.Probability, cvs, outcome)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, dist, err := openRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(dist) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"c", "probability"}); err != nil {
		return err
	}
	for c, p := range dist {
		if err := w.Write([]string{strconv.Itoa(c), strconv.FormatFloat(p, 'g', 12, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, dist, err := openRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(dist) == 0 {
		return fmt.Errorf("no data to export")
	}

	// svg needs hex colors; the phosphor palette uses terminal codes
	t := viz.ThemeOcean
	var svg string
	if spectrum {
		svg = export.SpectrumToSVG(dist, 800, 300, string(t.Plot))
	} else {
		var peaks []int
		if meta.Period > 0 {
			peaks = analysis.ExpectedPeaks(len(dist), meta.Period)
		}
		svg = export.DistributionToSVG(dist, 800, 300, string(t.Plot), string(t.Peak), peaks)
	}
	if svg == "" {
		return fmt.Errorf("nothing to draw")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func sweepBases(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args)
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}
	grid := widths
	if len(grid) == 0 {
		grid = []int{sz.RegisterA}
	}
	bases := shor.Bases(cfg.N, cfg.MaxBase)
	if len(bases) == 0 {
		return errors.New("no coprime base available")
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info().Int("n", cfg.N).Ints("bases", bases).Ints("widths", grid).Msg("sweeping")
	best, points, err := optim.NewGridSearch(bases, grid).
		Search(ctx, optim.SuccessRate(cfg.N, cfg.Ensemble.Runs, cfg.Seed, cfg.NewEngine()))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BASE\tREGISTER_A\tSUCCESS\t")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%s\n", p.Base, p.RegisterA, p.Score, viz.ProgressBar(p.Score, 20))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: a=%d m=%d success=%.3f\n", best.Base, best.RegisterA, best.Score)
	return nil
}

func stepInteractive(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, args[:1])
	if err != nil {
		return err
	}
	a, err := parseBase(args[1])
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}

	m, err := viz.NewStepper(sz, a, cfg.Seed, cfg.NewEngine())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func benchStages(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, args)
	if err != nil {
		return err
	}
	sz, err := shor.SizeFor(cfg.N, cfg.RegisterA)
	if err != nil {
		return err
	}
	bases := shor.Bases(cfg.N, cfg.MaxBase)
	if len(bases) == 0 {
		return errors.New("no coprime base available")
	}
	a := bases[0]

	engines := []struct {
		name string
		e    *quantum.Engine
	}{
		{"serial", &quantum.Engine{Workers: 1}},
		{"parallel", cfg.NewEngine()},
	}

	timings := make([][]time.Duration, len(engines))
	for i, eng := range engines {
		run, err := shor.NewRun(shor.RunConfig{
			Modulus:   sz.N,
			Base:      a,
			RegisterA: sz.RegisterA,
			RegisterB: sz.RegisterB,
			Source:    shor.NewSource(cfg.Seed),
			Engine:    eng.e,
		})
		if err != nil {
			return err
		}
		for !run.Done() {
			start := time.Now()
			if _, err := run.Next(); err != nil {
				return err
			}
			timings[i] = append(timings[i], time.Since(start))
		}
	}

	fmt.Printf("benchmarking N=%d a=%d (%d qubits, %d amplitudes, %d workers)\n\n",
		sz.N, a, sz.Simulated(), 1<<sz.Simulated(), engines[1].e.Workers)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tSERIAL\tPARALLEL\tSPEEDUP")
	var total [2]time.Duration
	for j, stage := range shor.Stages {
		s, p := timings[0][j], timings[1][j]
		total[0] += s
		total[1] += p
		fmt.Fprintf(w, "%s\t%v\t%v\t%.2fx\n", stage, s, p, speedup(s, p))
	}
	fmt.Fprintf(w, "total\t%v\t%v\t%.2fx\n", total[0], total[1], speedup(total[0], total[1]))
	return w.Flush()
}

func speedup(serial, parallel time.Duration) float64 {
	if parallel <= 0 {
		return 0
	}
	return float64(serial) / float64(parallel)
}
