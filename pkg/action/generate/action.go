package generate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmmoran/elementgen/internal/analysis"
	"github.com/cmmoran/elementgen/internal/render"
	"github.com/cmmoran/elementgen/internal/resolve"
	"github.com/cmmoran/elementgen/pkg/generator"
	"github.com/cmmoran/elementgen/pkg/manifest"
)

// Result summarises a generation run.
type Result struct {
	Analysis analysis.Stats
	Units    []generator.Unit
	Stale    []string
}

// Generate analyzes InDir, resolves and renders every item into OutDir and
// records the outputs in the manifest. Recoverable problems are only logged;
// the returned error joins every fatal one. Files written before a fatal
// error are kept and recorded.
func Generate(ctx context.Context, opts *generator.Options) (*Result, error) {
	return run(ctx, opts, render.FileWriter{Log: slog.Default()})
}

func run(ctx context.Context, opts *generator.Options, w render.Writer) (*Result, error) {
	opts.Normalize()
	l := slog.Default().With("in", opts.InDir, "out", opts.OutDir)

	paths, err := analysis.Discover(opts.InDir)
	if err != nil {
		return nil, err
	}
	l.With("files", len(paths)).Info("analyzing")

	reg := resolve.NewRegistry()
	res := &Result{}
	res.Analysis = analysis.Collect(ctx, analysis.NewFileAnalyzer(opts.InDir, l), paths, opts.Workers, reg, l)
	l.With("analyzed", res.Analysis.Analyzed, "failed", res.Analysis.Failed, "items", res.Analysis.Items).Info("analysis complete")

	g, err := generator.NewWithOpts(reg, w, opts)
	if err != nil {
		return nil, err
	}

	var errs []error
	if err = g.Resolve(); err != nil {
		errs = append(errs, err)
	}
	if err = g.Generate(ctx); err != nil {
		errs = append(errs, err)
	}
	if opts.Pom {
		if err = g.GeneratePom(); err != nil {
			errs = append(errs, err)
		}
	}
	res.Units = g.Units

	if opts.Manifest != "" {
		stale, err := record(opts, g.Units)
		if err != nil {
			errs = append(errs, err)
		}
		res.Stale = stale
		for _, p := range stale {
			l.With("file", p).Warn("previously generated file is no longer produced")
		}
	}

	l.With("generated", len(res.Units)).Info("done")
	return res, errors.Join(errs...)
}

func record(opts *generator.Options, units []generator.Unit) ([]string, error) {
	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, err
	}
	files := make([]manifest.Entry, 0, len(units))
	for _, u := range units {
		files = append(files, manifest.Entry{Path: u.Path, Template: u.Template, Source: u.Source})
	}
	m.Record(manifest.Generation{
		Namespace:  opts.Namespace,
		ModuleName: opts.ModuleName,
		Version:    opts.Version,
		Files:      files,
	})
	if err = m.Save(opts.Manifest); err != nil {
		return nil, err
	}
	return m.Stale(), nil
}
