package gormrepo

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"markovmap/internal/adapter/repo/gorm/model"
)

// OpenPostgres connects to the database behind dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return db, nil
}

// Migrate creates or updates the journal tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.MapRun{}); err != nil {
		return errors.Wrap(err, "migrate map_runs")
	}
	return nil
}
