// mapserver serves generated terrain maps over HTTP.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	httpadapter "markovmap/internal/adapter/http"
	gormrepo "markovmap/internal/adapter/repo/gorm"
	"markovmap/internal/adapter/repo/memory"
	"markovmap/internal/run"
)

var (
	flagAddr     = flag.String("addr", ":8080", "address to listen on")
	flagMaxCells = flag.Int("max_cells", httpadapter.DefaultMaxCells, "largest grid (cols*rows) a request may ask for")
	flagMaxPix   = flag.Int("max_pixels", httpadapter.DefaultMaxPixels, "largest image (width*height) a request may ask for")
	flagJournal  = flag.Int("journal", memory.DefaultCapacity, "runs kept by the in-memory journal when MARKOVMAP_DB_DSN is unset")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	h := httpadapter.Handler{Runs: buildRunStore(), MaxCells: *flagMaxCells, MaxPixels: *flagMaxPix}
	s := server.Default(server.WithHostPorts(*flagAddr))
	h.RegisterRoutes(s)

	klog.Infof("mapserver listening on %s", *flagAddr)
	s.Spin()
}

func buildRunStore() run.Store {
	dsn := strings.TrimSpace(os.Getenv("MARKOVMAP_DB_DSN"))
	if dsn == "" {
		return memory.NewStore(*flagJournal)
	}
	db := must.M1(gormrepo.OpenPostgres(dsn))
	must.M(gormrepo.Migrate(db))
	klog.Infof("journaling runs to postgres")
	return gormrepo.NewRunRepo(db)
}
