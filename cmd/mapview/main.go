//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"markovmap/internal/app"
	"markovmap/internal/config"
)

var (
	flagTPS    = flag.Int("tps", 60, "ticks per second")
	flagReveal = flag.Int("reveal", 120, "columns revealed per second, 0 shows the whole map at once")
)

func main() {
	klog.InitFlags(nil)
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	gen := must.M1(cfg.Generator())
	viewer := must.M1(app.New(gen, gen.Model().Catalog(), cfg.Grid(), cfg.Cell, cfg.Seed, *flagReveal))

	ebiten.SetWindowTitle(fmt.Sprintf("markovmap (%s, %s)", cfg.Catalog, gen.Mode()))
	ebiten.SetTPS(*flagTPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		klog.Fatal(err)
	}
}
