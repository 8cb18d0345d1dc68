// Package httpadapter serves generated maps over HTTP with hertz.
package httpadapter

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"markovmap/internal/config"
	"markovmap/internal/core"
	"markovmap/internal/render"
	"markovmap/internal/run"
	"markovmap/internal/terrain"
)

const (
	seedHeader = "X-Map-Seed"
	runHeader  = "X-Map-Run"

	// DefaultMaxCells caps the grid a single request may ask for.
	DefaultMaxCells = 512 * 512
	// DefaultMaxPixels caps the painted image of a single request.
	DefaultMaxPixels = 4096 * 4096
	// MaxCell caps the pixel edge of one cell.
	MaxCell = 64
)

var errBadRequest = errors.New("bad request")

// Handler serves maps, catalogs and the generation journal.
type Handler struct {
	Runs      run.Store
	MaxCells  int
	MaxPixels int
	Now       func() time.Time
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api")
	api.GET("/config", h.configInfo)
	api.GET("/catalogs", h.catalogs)
	api.GET("/catalogs/:name", h.catalog)
	api.GET("/map", h.mapImage)
	api.GET("/field", h.field)
	api.GET("/runs", h.runs)
}

type mapRequest struct {
	seed    int64
	cols    int
	rows    int
	cell    int
	catalog string
	mode    terrain.Mode
	format  render.Format
	thumb   int
}

func (h Handler) parseMapRequest(ctx *app.RequestContext) (mapRequest, error) {
	def := config.DefaultConfig()
	grid := def.Grid()
	req := mapRequest{cols: grid.W, rows: grid.H, cell: def.Cell, catalog: ctx.DefaultQuery("catalog", def.Catalog)}

	var err error
	if s := ctx.Query("seed"); s != "" {
		if req.seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return req, errors.Wrapf(errBadRequest, "invalid seed %q", s)
		}
	} else {
		req.seed = rand.Int64()
	}
	for key, dst := range map[string]*int{"cols": &req.cols, "rows": &req.rows, "cell": &req.cell, "thumb": &req.thumb} {
		s := ctx.Query(key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return req, errors.Wrapf(errBadRequest, "invalid %s %q", key, s)
		}
		*dst = n
	}
	if req.cols < 1 || req.rows < 1 {
		return req, errors.Wrapf(errBadRequest, "grid must be at least 1x1, got %dx%d", req.cols, req.rows)
	}
	if req.cell < 1 || req.cell > MaxCell {
		return req, errors.Wrapf(errBadRequest, "cell must be in [1, %d], got %d", MaxCell, req.cell)
	}
	if limit := h.maxCells(); req.cols > limit/req.rows {
		return req, errors.Wrapf(errBadRequest, "grid %dx%d exceeds %d cells", req.cols, req.rows, limit)
	}
	// cols*rows is bounded by maxCells here, so only the cell area can overflow.
	if limit := h.maxPixels(); req.cols*req.rows > limit/(req.cell*req.cell) {
		return req, errors.Wrapf(errBadRequest, "image of %dx%d cells at %dpx exceeds %d pixels", req.cols, req.rows, req.cell, limit)
	}
	if req.mode, err = terrain.ParseMode(ctx.Query("mode")); err != nil {
		return req, errors.Wrap(errBadRequest, err.Error())
	}
	if req.format, err = render.ParseFormat(ctx.Query("format")); err != nil {
		return req, errors.Wrap(errBadRequest, err.Error())
	}
	return req, nil
}

func (h Handler) maxCells() int {
	if h.MaxCells > 0 {
		return h.MaxCells
	}
	return DefaultMaxCells
}

func (h Handler) maxPixels() int {
	if h.MaxPixels > 0 {
		return h.MaxPixels
	}
	return DefaultMaxPixels
}

// runConfig describes the request as a run configuration.
func (req mapRequest) runConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = req.cols*req.cell, req.rows*req.cell
	cfg.Cell = req.cell
	cfg.Seed = req.seed
	cfg.Catalog = req.catalog
	cfg.Mode = req.mode.String()
	cfg.Output = "response." + string(req.format)
	return cfg
}

func (h Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// generate paints the requested field and journals it.
func (h Handler) generate(c context.Context, req mapRequest) (*terrain.Field, *terrain.Catalog, run.Record, error) {
	catalog, err := terrain.CatalogNamed(req.catalog)
	if err != nil {
		return nil, nil, run.Record{}, err
	}
	gen := terrain.NewGenerator(terrain.NewModel(catalog), terrain.WithMode(req.mode))
	f, err := gen.Generate(req.cols, req.rows, core.NewRNG(req.seed))
	if err != nil {
		return nil, nil, run.Record{}, err
	}
	rec := run.NewRecord(f, catalog, req.catalog, req.mode, req.seed, req.cell, h.now())
	if h.Runs != nil {
		if err := h.Runs.Save(c, rec); err != nil {
			klog.Warningf("failed to journal run %s: %v", rec.ID, err)
		}
	}
	return f, catalog, rec, nil
}

// configInfo reports the defaults a request starts from and the server limits.
func (h Handler) configInfo(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{
		"defaults":   config.DefaultConfig().Parameters(),
		"max_cells":  h.maxCells(),
		"max_pixels": h.maxPixels(),
		"max_cell":   MaxCell,
	})
}

func (h Handler) catalogs(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"catalogs": terrain.CatalogNames()})
}

func (h Handler) catalog(c context.Context, ctx *app.RequestContext) {
	catalog, err := terrain.CatalogNamed(ctx.Param("name"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, catalog.Doc())
}

func (h Handler) mapImage(c context.Context, ctx *app.RequestContext) {
	req, err := h.parseMapRequest(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	f, catalog, rec, err := h.generate(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	img := render.Thumbnail(render.Paint(f, catalog.Palette(), req.cell), req.thumb)
	var buf bytes.Buffer
	if err := render.Encode(&buf, img, req.format); err != nil {
		writeError(ctx, &render.OutputError{Path: "response", Err: err})
		return
	}
	ctx.Response.Header.Set(seedHeader, strconv.FormatInt(req.seed, 10))
	ctx.Response.Header.Set(runHeader, rec.ID)
	ctx.Data(consts.StatusOK, req.format.ContentType(), buf.Bytes())
}

type fieldResponse struct {
	Run        string                 `json:"run"`
	Seed       int64                  `json:"seed"`
	Cols       int                    `json:"cols"`
	Rows       int                    `json:"rows"`
	Categories []string               `json:"categories"`
	Columns    [][]int                `json:"columns"`
	Histogram  map[string]int         `json:"histogram"`
	Parameters core.ParameterSnapshot `json:"parameters"`
}

func (h Handler) field(c context.Context, ctx *app.RequestContext) {
	req, err := h.parseMapRequest(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	f, catalog, rec, err := h.generate(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp := fieldResponse{
		Run:        rec.ID,
		Seed:       req.seed,
		Cols:       f.Cols(),
		Rows:       f.Rows(),
		Categories: make([]string, catalog.Len()),
		Columns:    make([][]int, f.Cols()),
		Histogram:  rec.Histogram,
		Parameters: req.runConfig().Parameters(),
	}
	for _, cat := range catalog.Categories() {
		resp.Categories[cat] = catalog.Name(cat)
	}
	for x := range resp.Columns {
		resp.Columns[x] = make([]int, f.Rows())
	}
	f.Each(func(x, y int, cat terrain.Category) { resp.Columns[x][y] = int(cat) })
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) runs(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if s := ctx.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(ctx, errors.Wrapf(errBadRequest, "invalid limit %q", s))
			return
		}
		limit = n
	}
	if h.Runs == nil {
		ctx.JSON(consts.StatusOK, map[string]any{"runs": []run.Record{}})
		return
	}
	records, err := h.Runs.Recent(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"runs": records})
}

func writeError(ctx *app.RequestContext, err error) {
	var outErr *render.OutputError
	switch {
	case errors.Is(err, errBadRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, terrain.ErrUnknownCatalog):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_catalog", err.Error())
	case errors.Is(err, terrain.ErrConfig):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "invalid_catalog", err.Error())
	case errors.As(err, &outErr):
		writeErrorBody(ctx, consts.StatusInternalServerError, "output_failed", err.Error())
	default:
		klog.Errorf("request failed: %+v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
