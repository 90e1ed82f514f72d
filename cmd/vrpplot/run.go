package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"vrp-route-plotter/internal/adapters/export"
	"vrp-route-plotter/internal/adapters/problemfile"
	"vrp-route-plotter/internal/app"
	"vrp-route-plotter/internal/config"
	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/ports"
	"vrp-route-plotter/internal/render"
	"vrp-route-plotter/internal/services"
	"vrp-route-plotter/internal/synth"
)

type options struct {
	configPath  string
	problem     string
	clusters    bool
	seed        int64
	out         string
	outFormat   string
	batch       string
	outDir      string
	format      string
	concurrency int
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("vrpplot", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", config.Get("CONFIG_PATH", ""), "YAML settings file")
	fs.StringVar(&o.problem, "problem", "", "problem file (YAML or JSON)")
	fs.BoolVar(&o.clusters, "clusters", false, "generate a clustered demo problem")
	fs.Int64Var(&o.seed, "seed", 42, "seed for -clusters")
	fs.StringVar(&o.out, "out", "chart.png", "chart file; the extension selects the format")
	fs.StringVar(&o.batch, "batch", "", "render every problem file in this directory")
	fs.StringVar(&o.outDir, "outdir", "charts", "output directory for -batch")
	fs.StringVar(&o.format, "format", "png", "chart format for -batch (png, svg, pdf, geojson)")
	fs.IntVar(&o.concurrency, "concurrency", 4, "parallel problems for -batch")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	modes := 0
	for _, set := range []bool{o.problem != "", o.clusters, o.batch != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return options{}, errors.New("choose exactly one of -problem, -clusters or -batch")
	}

	if o.batch != "" {
		if !render.SupportedFormat(o.format) {
			return options{}, fmt.Errorf("-format %q: want png, svg, pdf or geojson", o.format)
		}
		return o, nil
	}
	o.outFormat = strings.ToLower(strings.TrimPrefix(filepath.Ext(o.out), "."))
	if !render.SupportedFormat(o.outFormat) {
		return options{}, fmt.Errorf("-out %q: extension must be .png, .svg, .pdf or .geojson", o.out)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	settings, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	renderOpts, err := app.RenderOptions(settings.Chart)
	if err != nil {
		return err
	}
	sv, err := app.NewSolver(settings.Solver)
	if err != nil {
		return err
	}

	if o.batch != "" {
		return runBatch(ctx, o, sv, renderOpts, stdout)
	}

	var (
		problem domain.Problem
		mode    geo.Mode
		name    string
	)
	if o.clusters {
		problem, mode, name = synth.Problem(o.seed, synth.Options{}), geo.Geographic, fmt.Sprintf("clusters-%d", o.seed)
	} else {
		f, err := problemfile.Load(o.problem)
		if err != nil {
			return err
		}
		problem, mode, name = f.Problem, f.Mode, f.Name
	}

	planner := &services.Planner{
		Solver:   sv,
		Exporter: export.NewFileExporter(filepath.Dir(o.out)),
	}
	res, err := planner.PlanRoutes(ctx, services.PlanRoutesRequest{
		Problem:       problem,
		Mode:          mode,
		Format:        o.outFormat,
		RenderOptions: renderOpts,
		Name:          strings.TrimSuffix(filepath.Base(o.out), filepath.Ext(o.out)),
	})
	if err != nil {
		return err
	}

	return printSummary(stdout, name, res)
}

// runBatch plans every problem file in o.batch with at most o.concurrency in flight.
// The first failure cancels the rest.
func runBatch(ctx context.Context, o options, sv ports.Solver, renderOpts []render.Option, stdout io.Writer) error {
	entries, err := os.ReadDir(o.batch)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	var files []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			if !e.IsDir() {
				files = append(files, filepath.Join(o.batch, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("batch: no problem files in %s", o.batch)
	}

	planner := &services.Planner{Solver: sv, Exporter: export.NewFileExporter(o.outDir)}
	results := make([]*services.PlanRoutesResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.concurrency, 1))
	for i, path := range files {
		g.Go(func() error {
			f, err := problemfile.Load(path)
			if err != nil {
				return err
			}
			res, err := planner.PlanRoutes(ctx, services.PlanRoutesRequest{
				Problem:       f.Problem,
				Mode:          f.Mode,
				Format:        o.format,
				RenderOptions: renderOpts,
				Name:          strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			})
			if err != nil {
				return fmt.Errorf("batch %s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		if err := printSummary(stdout, filepath.Base(files[i]), res); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, name string, res *services.PlanRoutesResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "problem=%s run_id=%s chart=%s\n", name, res.RunID, res.ChartLocation)
	fmt.Fprintln(tw, "SERIES\tVEHICLE\tSTOPS\tCOST")
	for _, s := range res.Summary {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\n", s.Key, s.VehicleID, s.Stops, s.Cost)
	}
	if n := len(res.Solution.Unassigned); n > 0 {
		fmt.Fprintf(tw, "unassigned\t%d\t\t\n", n)
	}
	return tw.Flush()
}
