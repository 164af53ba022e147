package services

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/gorm"
)

// EarnedBadge is one persisted achievement in the profile response.
type EarnedBadge struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// UserProfile bundles everything the profile page needs in one response:
// the authoritative server-side copy of the user, the donation history,
// the earned achievement badges and the derived weight-tier ladder.
type UserProfile struct {
	Profile  models.User       `json:"profile"`
	History  []models.Donation `json:"history"`
	Badges   []EarnedBadge     `json:"badges"`
	Tiers    []TierStatus      `json:"tiers"`
	NextTier *TierProgress     `json:"nextTier,omitempty"`
	TotalKg  float64           `json:"total_kg"`
}

// GetUserProfile loads profile, history (newest first) and badges for a user.
func GetUserProfile(db *gorm.DB, userID uint64) (*UserProfile, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	history := []models.Donation{}
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}

	badges := []EarnedBadge{}
	if err := db.Table("user_badges").
		Select("badges.id, badges.name, badges.description, badges.icon").
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.created_at").
		Scan(&badges).Error; err != nil {
		return nil, err
	}

	var totalKg float64
	for _, d := range history {
		totalKg += d.WeightKg
	}
	tiers, next := EvaluateTiers(totalKg)

	return &UserProfile{
		Profile:  user,
		History:  history,
		Badges:   badges,
		Tiers:    tiers,
		NextTier: next,
		TotalKg:  totalKg,
	}, nil
}
