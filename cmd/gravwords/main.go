package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/contact"
	"github.com/san-kum/gravwords/internal/export"
	"github.com/san-kum/gravwords/internal/gui"
	"github.com/san-kum/gravwords/internal/logging"
	"github.com/san-kum/gravwords/internal/scenario"
	"github.com/san-kum/gravwords/internal/storage"
	"github.com/san-kum/gravwords/internal/sweep"
	"github.com/san-kum/gravwords/internal/theme"
	"github.com/san-kum/gravwords/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir      string
	configFile   string
	preset       string
	logFile      string
	logLevel     string
	seed         int64
	series       []string
	replaySeries []string
	noSave       bool
	plotWidth    int
	plotHeight   int
	svgPath      string

	sweepProfiles []string
	sweepSeeds    int
	sweepWorkers  int
	sweepMetric   string
	sweepMax      bool

	contactName    string
	contactEmail   string
	contactMessage string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravwords",
		Short:        "draggable, throwable word cloud",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".gravwords", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "word cloud in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "word cloud in a window",
		RunE:  runGUI,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "run a recorded pointer scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	replayCmd.Flags().StringSliceVar(&replaySeries, "series", []string{"mean_speed"}, "series to plot")
	replayCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id|latest]",
		Short: "plot stored run series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&series, "series", []string{"mean_speed", "max_angle"}, "series to plot")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the first series as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "replay a scenario across presets and seeds",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringSliceVar(&sweepProfiles, "profiles", nil, "presets to compare (default all)")
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 4, "seeds per preset")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "peak_mean_speed", "metric to rank by")
	sweepCmd.Flags().BoolVar(&sweepMax, "max", false, "rank highest first")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list interaction presets",
		RunE:  listPresets,
	}

	themeCmd := &cobra.Command{
		Use:   "theme [name|#hex]",
		Short: "print the palette derived from an accent color",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showTheme,
	}

	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "build the contact mailto link",
		RunE:  buildContact,
	}
	contactCmd.Flags().StringVar(&contactName, "name", "", "your name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "your email")
	contactCmd.Flags().StringVar(&contactMessage, "message", "", "message")

	rootCmd.AddCommand(tuiCmd, guiCmd, replayCmd, sweepCmd, listCmd, plotCmd, presetsCmd, themeCmd, contactCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves --config, then --preset, then the defaults. --seed
// overrides whatever the source says.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %q (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if !cmd.Flags().Changed("log-file") && cfg.Log.File != "" {
		logFile = cfg.Log.File
	}
	if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
		logLevel = cfg.Log.Level
	}
	return cfg, cfg.Validate()
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logFile, logLevel)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	return tui.Run(tui.Options{Config: cfg, Logger: log})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	return gui.Run(gui.Options{Config: cfg, Logger: log})
}

func runReplay(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := []scenario.Option{scenario.WithLogger(log)}
	if configFile != "" || preset != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts = append(opts, scenario.WithConfig(cfg))
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}

	var frame *export.SVG
	if svgPath != "" {
		frame = export.NewSVG(sc.Surface.Width, sc.Surface.Height, "")
		opts = append(opts, scenario.WithSurface(frame))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("replaying %s (%s, %v at %d fps)...\n", sc.Name, sc.Profile, sc.Duration, sc.FPS)
	start := time.Now()
	res, err := scenario.Run(ctx, sc, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("frames: %d\n", len(res.Frames))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if frame != nil {
		if err := frame.WriteFile(svgPath); err != nil {
			return err
		}
		fmt.Printf("final frame: %s\n", svgPath)
	}

	printMetrics(res.Metrics)
	for _, name := range replaySeries {
		data, err := res.Series(name)
		if err != nil {
			return err
		}
		plot(data, name, 80, 10)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	profiles := sweepProfiles
	if len(profiles) == 0 {
		profiles = config.ListPresets()
	}
	start := sc.Seed
	if cmd.Flags().Changed("seed") {
		start = seed
	}
	sw := &sweep.Sweep{Profiles: profiles, Seeds: sweepSeeds, SeedStart: start, Workers: sweepWorkers}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	began := time.Now()
	runs, err := sw.Run(ctx, sc, scenario.WithLogger(log))
	if err != nil {
		return err
	}
	fmt.Printf("%d runs in %v\n\n", len(runs), time.Since(began))

	means := sweep.Mean(runs, sweepMetric)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PROFILE\tMEAN %s\n", sweepMetric)
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%.4f\n", p, means[p])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(runs, sweepMetric, sweepMax); ok {
		fmt.Printf("\nbest: %s seed %d (%s = %.4f)\n", best.Profile, best.Seed, sweepMetric, best.Result.Metrics[sweepMetric])
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, k := range names {
		fmt.Printf("  %s: %.4f\n", k, m[k])
	}
}

func plot(data []float64, caption string, width, height int) {
	if len(data) == 0 {
		fmt.Printf("%s: no data\n", caption)
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	fmt.Println()
	fmt.Println(graph)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPROFILE\tTIME\tDURATION\tFPS\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	var meta *storage.RunMetadata
	var err error
	if len(args) == 0 || args[0] == "latest" {
		meta, err = st.Latest()
	} else {
		meta, err = st.Load(args[0])
	}
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s (%s, %s)\n", meta.ID, meta.Scenario, meta.Profile)

	res := &scenario.Result{Frames: frames}
	for i, name := range series {
		data, err := res.Series(name)
		if err != nil {
			return err
		}
		plot(data, name, plotWidth, plotHeight)
		if i == 0 && svgPath != "" {
			if err := os.WriteFile(svgPath, []byte(export.SeriesToSVG(data, 800, 300, "#89B6A5")), 0644); err != nil {
				return err
			}
		}
	}
	printMetrics(meta.Metrics)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOLICY\tENERGY\tINTERVAL\tJITTER\tTHROW")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name).Interaction
		fmt.Fprintf(w, "%s\t%s\t%t\t%v\t%.3f\t%.2f\n",
			name, p.Policy, p.Energy, p.AmbientInterval, p.RotationJitter, p.ThrowDamping)
	}
	return w.Flush()
}

func showTheme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	hex := ""
	name := cfg.Theme.Active
	if len(args) == 1 {
		name = args[0]
	}
	for _, o := range cfg.Theme.Options {
		if o.Name == name {
			hex = o.Hex
		}
	}
	if hex == "" {
		hex = name
	}

	p, err := theme.Derive(hex)
	if err != nil {
		return fmt.Errorf("%w (known: %v)", err, themeNames(cfg))
	}
	styles := theme.NewStyles(p)
	rows := []struct {
		role string
		c    theme.RGB
	}{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"text", p.Text},
		{"background-dark", p.BackgroundDark},
		{"typing", p.Typing},
		{"card-title", p.CardTitle},
		{"card-body", p.CardBody},
		{"button-hover", p.ButtonHover},
	}
	fmt.Println(styles.Title.Render(name))
	for _, r := range rows {
		fmt.Printf("  %-16s %s  %s  %s\n", r.role, r.c.Hex(), r.c, theme.SwatchStyle(r.c.Hex(), false).Render("  "))
	}
	return nil
}

func themeNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Theme.Options))
	for i, o := range cfg.Theme.Options {
		names[i] = o.Name
	}
	return names
}

func buildContact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	link, err := contact.Mailto(cfg.Contact.Recipient, cfg.Contact.Subject, contact.Fields{
		Name:    contactName,
		Email:   contactEmail,
		Message: contactMessage,
	})
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}
