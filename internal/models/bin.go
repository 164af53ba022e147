package models

import (
	"time"

	"gorm.io/datatypes"
)

// Bin represents a physical textile-donation drop point.
// Rows are seeded reference data; the application never mutates them.
type Bin struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	BinCode   string         `gorm:"column:bin_code;uniqueIndex;size:64;not null" json:"bin_code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Details   datatypes.JSON `gorm:"type:json" json:"details,omitempty"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

// TableName overrides the table name for Bin
func (Bin) TableName() string {
	return "bins"
}
