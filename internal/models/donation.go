package models

import (
	"time"
)

// Donation is one append-only ledger entry. Rows are immutable once created;
// PointsEarned is fixed at creation time even if the points rate changes later.
type Donation struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"not null;index:idx_donations_user_id" json:"user_id"`
	BinID        uint64    `gorm:"not null;index" json:"bin_id"`
	Items        int64     `gorm:"not null" json:"items"`
	WeightKg     float64   `gorm:"column:weight_kg;not null" json:"weight_kg"`
	PointsEarned int64     `gorm:"not null" json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for Donation
func (Donation) TableName() string {
	return "donations"
}
