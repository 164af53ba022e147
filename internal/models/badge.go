package models

import (
	"time"
)

// Badge criteria types. Criteria are evaluated against the user's totals
// after they have been updated for the triggering donation.
const (
	CriteriaDonations = "donations"
	CriteriaPoints    = "points"
)

// Badge represents a persisted achievement that users unlock
// by reaching certain milestones. The catalog is seeded and
// immutable at runtime.
type Badge struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"size:255" json:"description"`
	Icon          string    `gorm:"size:16" json:"icon,omitempty"`
	CriteriaType  string    `gorm:"size:32;not null" json:"-"`
	CriteriaValue int64     `gorm:"not null" json:"-"`
	IsActive      bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt     time.Time `json:"-"`
}

// TableName overrides the table name for Badge
func (Badge) TableName() string {
	return "badges"
}

// Unlocked reports whether the badge criteria hold for the given user totals.
func (b Badge) Unlocked(points, donations int64) bool {
	switch b.CriteriaType {
	case CriteriaDonations:
		return donations >= b.CriteriaValue
	case CriteriaPoints:
		return points >= b.CriteriaValue
	}
	return false
}

// UserBadge records that a user has unlocked a badge. The unique index
// guarantees a badge is awarded at most once per user.
type UserBadge struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeID   uint64    `gorm:"not null;index:idx_user_badge,unique" json:"badge_id"`
	CreatedAt time.Time `json:"earned_at"`
}

// TableName overrides the table name for UserBadge
func (UserBadge) TableName() string {
	return "user_badges"
}
