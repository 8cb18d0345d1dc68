// Package gormrepo stores the generation journal in PostgreSQL.
package gormrepo

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"markovmap/internal/adapter/repo/gorm/model"
	"markovmap/internal/run"
)

// DefaultRecentLimit caps Recent when no limit is given.
const DefaultRecentLimit = 100

// RunRepo implements run.Store on top of gorm.
type RunRepo struct {
	db *gorm.DB
}

var _ run.Store = RunRepo{}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Save(ctx context.Context, rec run.Record) error {
	m, err := toModel(rec)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return errors.Wrapf(err, "save run %s", rec.ID)
	}
	return nil
}

func (r RunRepo) Recent(ctx context.Context, limit int) ([]run.Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var rows []model.MapRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	out := make([]run.Record, 0, len(rows))
	for _, m := range rows {
		rec, err := fromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func toModel(rec run.Record) (model.MapRun, error) {
	hist, err := json.Marshal(rec.Histogram)
	if err != nil {
		return model.MapRun{}, errors.Wrapf(err, "encode histogram of run %s", rec.ID)
	}
	return model.MapRun{
		ID:        rec.ID,
		Seed:      rec.Seed,
		Catalog:   rec.Catalog,
		Mode:      rec.Mode,
		Cols:      int32(rec.Cols),
		Rows:      int32(rec.Rows),
		Cell:      int32(rec.Cell),
		Histogram: hist,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func fromModel(m model.MapRun) (run.Record, error) {
	hist := map[string]int{}
	if len(m.Histogram) > 0 {
		if err := json.Unmarshal(m.Histogram, &hist); err != nil {
			return run.Record{}, errors.Wrapf(err, "decode histogram of run %s", m.ID)
		}
	}
	return run.Record{
		ID:        m.ID,
		Seed:      m.Seed,
		Catalog:   m.Catalog,
		Mode:      m.Mode,
		Cols:      int(m.Cols),
		Rows:      int(m.Rows),
		Cell:      int(m.Cell),
		Histogram: hist,
		CreatedAt: m.CreatedAt,
	}, nil
}
