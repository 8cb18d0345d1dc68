// markovmap paints terrain maps with the spatial Markov generator and writes
// them as images.
package main

import (
	"context"
	"flag"
	"fmt"
	"sync"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"markovmap/internal/batch"
	"markovmap/internal/config"
	"markovmap/internal/core"
	"markovmap/internal/render"
	"markovmap/internal/terrain"
	"markovmap/internal/ui/cli"
)

func main() {
	klog.InitFlags(nil)
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	gen := must.M1(cfg.Generator())
	catalog := gen.Model().Catalog()
	grid := cfg.Grid()
	jobs := batch.Jobs(cfg.Seed, cfg.Output, cfg.Count)

	klog.Infof("Generating map ...")
	if klog.V(1).Enabled() {
		for _, g := range cfg.Parameters().Groups {
			for _, p := range g.Params {
				klog.Infof("%s: %s = %s", g.Name, p.Label, p.Value)
			}
		}
	}
	err := batch.Run(context.Background(), jobs, cfg.Workers, func(ctx context.Context, job batch.Job) error {
		f, err := gen.Generate(grid.W, grid.H, core.NewRNG(job.Seed))
		if err != nil {
			return err
		}
		if err := (render.FileSink{Path: job.Output}).Write(render.Paint(f, catalog.Palette(), cfg.Cell)); err != nil {
			return err
		}
		klog.V(1).Infof("map %d (seed %d) written to %s", job.Index, job.Seed, job.Output)
		if cfg.Preview {
			printPreview(f, catalog)
		}
		return nil
	})
	if err != nil {
		klog.Exitf("Generation failed: %v", err)
	}
	klog.Infof("Done!")
}

var previewMu sync.Mutex

func printPreview(f *terrain.Field, catalog *terrain.Catalog) {
	previewMu.Lock()
	defer previewMu.Unlock()
	fmt.Println(cli.Preview(f, catalog, cli.TerminalWidth()))
	fmt.Println(cli.Legend(catalog, f.Histogram(catalog.Len())))
}
