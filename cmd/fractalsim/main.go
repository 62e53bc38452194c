package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fractalsim/internal/analysis"
	"github.com/san-kum/fractalsim/internal/config"
	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/gui"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/render"
	"github.com/san-kum/fractalsim/internal/session"
	"github.com/san-kum/fractalsim/internal/storage"
	"github.com/san-kum/fractalsim/internal/tui"
	"github.com/san-kum/fractalsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	workers    int

	paletteName string
	coloring    string
	preset      string

	tuiBookmark    string
	theme          string
	windowBookmark string
	winWidth       int
	winHeight      int

	bins int

	benchRe, benchIm float64

	orbitRe, orbitIm float64
	orbitIterations  uint32

	bifurcationCols, bifurcationRows int

	deleteMark string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Every command binds its own flag
// variables, since pflag writes a flag's default when it is defined.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fractalsim",
		Short:        "julia and mandelbrot explorer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractalsim", "bookmark directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "render workers (0 = all cpus)")
	rootCmd.PersistentFlags().StringVar(&paletteName, "palette", "", "named palette")
	rootCmd.PersistentFlags().StringVar(&coloring, "coloring", "", "count, smooth or renormalized")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore julia sets in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&tuiBookmark, "bookmark", "", "open a saved bookmark")
	tuiCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name,
		"status line theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().AddFlagSet(tuiCmd.Flags())

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "explore julia sets in a window",
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&winWidth, "width", 0, "window width (default from config)")
	windowCmd.Flags().IntVar(&winHeight, "height", 0, "window height (default from config)")
	windowCmd.Flags().StringVar(&windowBookmark, "bookmark", "", "open a saved bookmark")

	renderCmd := &cobra.Command{
		Use:   "render [mandelbrot|julia]",
		Short: "render once to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderOnce,
	}
	addFieldFlags(renderCmd)

	statsCmd := &cobra.Command{
		Use:   "stats [mandelbrot|julia]",
		Short: "escape value summary and histogram",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fieldStats,
	}
	addFieldFlags(statsCmd)
	statsCmd.Flags().IntVar(&bins, "bins", 40, "histogram bins")

	benchCmd := &cobra.Command{
		Use:   "bench [mandelbrot|julia]",
		Short: "benchmark the renderer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchField,
	}
	benchCmd.Flags().Float64Var(&benchRe, "re", -0.8, "real part of c (julia, unless a preset or config sets it)")
	benchCmd.Flags().Float64Var(&benchIm, "im", 0.156, "imaginary part of c (julia, unless a preset or config sets it)")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "plot |z| along the orbit of 0 under z² + c",
		RunE:  plotOrbit,
	}
	orbitCmd.Flags().Float64Var(&orbitRe, "re", -0.75, "real part of c")
	orbitCmd.Flags().Float64Var(&orbitIm, "im", 0.1, "imaginary part of c")
	orbitCmd.Flags().Uint32Var(&orbitIterations, "iterations", 100, "iteration budget")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "attractors of x² + c along the real axis",
		RunE:  plotBifurcation,
	}
	bifurcationCmd.Flags().IntVar(&bifurcationCols, "cols", 100, "columns")
	bifurcationCmd.Flags().IntVar(&bifurcationRows, "rows", 30, "rows")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFRACTAL\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, cfg.Fractal, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range palette.Names() {
				pal, err := palette.Named(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-10s %s\n", name, viz.Swatch(pal, 48))
			}
			return nil
		},
	}

	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "list saved bookmarks",
		RunE:  listBookmarks,
	}
	bookmarksCmd.Flags().StringVar(&deleteMark, "delete", "", "delete the named bookmark")

	rootCmd.AddCommand(tuiCmd, windowCmd, renderCmd, statsCmd, benchCmd, orbitCmd, bifurcationCmd, presetsCmd, palettesCmd, bookmarksCmd)
	return rootCmd
}

// addFieldFlags defines the view flags of the one-shot renders. They are read
// back by name, so render and stats never share storage.
func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("re", 0, "real part of c (julia)")
	cmd.Flags().Float64("im", 0, "imaginary part of c (julia)")
	cmd.Flags().Uint32("iterations", 0, "iteration budget (default from config)")
	cmd.Flags().Int("cols", 80, "terminal columns")
	cmd.Flags().Int("rows", 30, "terminal rows")
	cmd.Flags().Float64("zoom", 0, "zoom factor (default from config)")
	cmd.Flags().Float64("center-re", 0, "real part of the view centre")
	cmd.Flags().Float64("center-im", 0, "imaginary part of the view centre")
}

// gridSize is the pixel grid of a one-shot render from its --cols and --rows.
func gridSize(cmd *cobra.Command) (int, int, error) {
	cols, err := cmd.Flags().GetInt("cols")
	if err != nil {
		return 0, 0, err
	}
	rows, err := cmd.Flags().GetInt("rows")
	if err != nil {
		return 0, 0, err
	}
	w, h := viz.CellSize(cols, rows)
	return w, h, nil
}

// loadConfig layers defaults, the config file, a preset and finally flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("palette") {
		cfg.Palette = paletteName
		cfg.Stops = nil
	}
	if flags.Changed("coloring") {
		cfg.Coloring = coloring
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	for name, dst := range map[string]*float64{
		"zoom":      &cfg.View.Zoom,
		"center-re": &cfg.View.Center.Re,
		"center-im": &cfg.View.Center.Im,
		"re":        &cfg.Julia.Re,
		"im":        &cfg.Julia.Im,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	if flags.Changed("iterations") {
		iterations, err := flags.GetUint32("iterations")
		if err != nil {
			return nil, err
		}
		cfg.Session.DefaultIterations = iterations
		// one-shot renders may go below the explorer's floor
		cfg.Session.MinIterations = max(min(cfg.Session.MinIterations, iterations), 1)
	}
	if flags.Changed("width") {
		cfg.Width = winWidth
	}
	if flags.Changed("height") {
		cfg.Height = winHeight
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds the explorer state, restoring a bookmark when one is
// named.
func newSession(cfg *config.Config, bookmark string) (*session.Session, error) {
	pal, err := cfg.BuildPalette()
	if err != nil {
		return nil, err
	}
	sess := session.New(cfg.SessionConfig(), pal, render.New(cfg.Workers))
	sess.SetParams(cfg.InitialParams())

	if bookmark != "" {
		b, err := storage.New(dataDir).Load(bookmark)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookmark: %w", err)
		}
		sess.SetParams(b.Params())
	}
	return sess, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, tuiBookmark)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Session: sess,
		Store:   storage.New(dataDir),
		Palette: cfg.Palette,
		Theme:   theme,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, windowBookmark)
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), sess, gui.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Log:    os.Stderr,
	})
}

// fieldJob is the one-shot render described by the config and the
// positional fractal argument.
func fieldJob(cfg *config.Config, args []string, width, height int) (render.Job, error) {
	kind := cfg.Kind()
	if len(args) > 0 {
		k, err := render.ParseKind(args[0])
		if err != nil {
			return render.Job{}, err
		}
		kind = k
	}
	pal, err := cfg.BuildPalette()
	if err != nil {
		return render.Job{}, err
	}
	return render.Job{
		Kind:          kind,
		C:             cfg.Julia.Point(),
		MaxIterations: cfg.Session.DefaultIterations,
		Width:         width,
		Height:        height,
		View:          cfg.RenderView(),
		Palette:       pal,
	}, nil
}

func renderOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, h, err := gridSize(cmd)
	if err != nil {
		return err
	}
	job, err := fieldJob(cfg, args, w, h)
	if err != nil {
		return err
	}

	start := time.Now()
	pixels, err := render.New(cfg.Workers).Render(cmd.Context(), job)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	canvas := viz.NewCanvas(w, h)
	canvas.Load(pixels)
	fmt.Print(canvas.String())
	fmt.Printf("%9s for: Max iters = %3d, c = %6.3f + %6.3fi\n",
		elapsed.Round(10*time.Microsecond), job.MaxIterations, job.C.Re, job.C.Im)
	return nil
}

func fieldStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, h, err := gridSize(cmd)
	if err != nil {
		return err
	}
	job, err := fieldJob(cfg, args, w, h)
	if err != nil {
		return err
	}

	values, err := render.New(cfg.Workers).Escapes(cmd.Context(), job)
	if err != nil {
		return err
	}
	s := analysis.Summarize(values, job.MaxIterations, bins)

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %dx%d", job.Kind, w, h)))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("interior"), viz.MetricValue.Render(fmt.Sprintf("%.1f%%", 100*s.InteriorFraction())))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("mean escape"), viz.MetricValue.Render(fmt.Sprintf("%.2f", s.Mean)))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("range"), viz.MetricValue.Render(fmt.Sprintf("[%.2f, %.2f]", s.Min, s.Max)))
	fmt.Println(viz.Separator(80))

	graph := asciigraph.Plot(s.Floats(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("escaped pixels per bin, %d iterations", job.MaxIterations)),
	)
	fmt.Println(graph)
	return nil
}

// benchConfig is the config bench renders with. Its --re and --im defaults
// only stand in when neither a preset nor a config file chose a constant.
func benchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if preset == "" && configFile == "" {
		if !flags.Changed("re") {
			cfg.Julia.Re = benchRe
		}
		if !flags.Changed("im") {
			cfg.Julia.Im = benchIm
		}
	}
	return cfg, nil
}

func benchField(cmd *cobra.Command, args []string) error {
	cfg, err := benchConfig(cmd)
	if err != nil {
		return err
	}

	sizes := [][2]int{{320, 240}, {640, 480}, {1000, 800}}
	budgets := []uint32{50, 100, 500}
	workerCounts := []int{1, runtime.NumCPU()}

	fmt.Printf("benchmarking %s\n\n", cfg.Kind())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tITERS\tWORKERS\tTIME\tMPIX/SEC")

	for _, size := range sizes {
		job, err := fieldJob(cfg, args, size[0], size[1])
		if err != nil {
			return err
		}
		for _, budget := range budgets {
			job.MaxIterations = budget
			for _, n := range workerCounts {
				start := time.Now()
				if _, err := render.New(n).Render(cmd.Context(), job); err != nil {
					return err
				}
				elapsed := time.Since(start)

				mpix := float64(size[0]*size[1]) / elapsed.Seconds() / 1e6
				fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.1f\n",
					size[0], size[1], budget, n, elapsed.Round(time.Microsecond), mpix)
			}
		}
	}
	return w.Flush()
}

func plotOrbit(cmd *cobra.Command, args []string) error {
	c := escape.Point{Re: orbitRe, Im: orbitIm}
	orbit := analysis.Orbit(escape.Point{}, c, orbitIterations)
	n := escape.Value(escape.Point{}, c, orbitIterations)

	status := "bounded"
	if n < float64(orbitIterations) {
		status = fmt.Sprintf("escaped after %.0f steps", n)
	}
	graph := asciigraph.Plot(analysis.Moduli(orbit),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("|z| for c = %s, %s", c, status)),
	)
	fmt.Println(graph)
	return nil
}

func plotBifurcation(cmd *cobra.Command, args []string) error {
	data := analysis.BifurcationDiagram(-2, 0.25, bifurcationCols, 1000, 128)
	fmt.Println(viz.Title.Render("x² + c for c in [-2, 0.25]"))
	fmt.Print(analysis.BifurcationToASCII(data, bifurcationCols, bifurcationRows))
	return nil
}

func listBookmarks(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if deleteMark != "" {
		if err := st.Delete(deleteMark); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", deleteMark)
		return nil
	}

	marks, err := st.List()
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		fmt.Println("no bookmarks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIME\tC\tCENTER\tZOOM\tITERS\tPALETTE")
	for _, b := range marks {
		p := b.Params()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3g\t%d\t%s\n",
			b.Name,
			b.Timestamp.Format("2006-01-02 15:04:05"),
			p.C,
			p.Center,
			p.Zoom,
			p.MaxIterations,
			b.Palette,
		)
	}
	return w.Flush()
}
