package models

import (
	"time"
)

// ImpactID is the primary key of the single global impact row.
const ImpactID = 1

// Impact is the singleton row holding the running global totals.
// It is updated incrementally in the same transaction as each donation
// insert, never recomputed from the ledger on read.
type Impact struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	TotalKg        float64   `gorm:"column:total_kg;not null;default:0" json:"total_kg"`
	FamiliesHelped int64     `gorm:"not null;default:0" json:"families_helped"`
	CO2SavedKg     float64   `gorm:"column:co2_saved_kg;not null;default:0" json:"co2_saved_kg"`
	Volunteers     int64     `gorm:"not null;default:0" json:"volunteers"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName overrides the table name for Impact
func (Impact) TableName() string {
	return "impact"
}
