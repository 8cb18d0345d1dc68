package model

import "time"

// MapRun is one row of the generation journal.
type MapRun struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Seed      int64     `gorm:"not null"`
	Catalog   string    `gorm:"not null;size:128"`
	Mode      string    `gorm:"not null;size:32"`
	Cols      int32     `gorm:"not null"`
	Rows      int32     `gorm:"not null"`
	Cell      int32     `gorm:"not null"`
	Histogram []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (MapRun) TableName() string { return "map_runs" }
