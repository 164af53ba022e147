package models

import (
	"time"
)

// User represents a registered donor account.
// Points and Donations are only ever mutated by the scan service,
// inside the same transaction that records the donation itself.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	Donations    int64     `gorm:"not null;default:0" json:"donations"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
