package services

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	TotalKg float64 `json:"total_kg"`
}

// ImpactSummary is the global impact response, in the field names the
// original impact page consumes.
type ImpactSummary struct {
	Kg         float64 `json:"kg"`
	Families   int64   `json:"families"`
	CO2        float64 `json:"co2"`
	Volunteers int64   `json:"volunteers"`
}

// ListLeaderboard aggregates the donation ledger grouped by user, heaviest
// donors first. The LEFT JOIN keeps zero-donation users on the board with
// a 0 total.
func ListLeaderboard(db *gorm.DB) ([]LeaderboardEntry, error) {
	query := db.Model(&models.User{}).
		Select("users.id, users.name, COALESCE(SUM(donations.weight_kg), 0) AS total_kg").
		Joins("LEFT JOIN donations ON donations.user_id = users.id").
		Group("users.id, users.name").
		Order("total_kg DESC")

	// The board is public and unbounded; cap the aggregate on MySQL so a
	// huge ledger cannot hold a connection forever.
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.New("MAX_EXECUTION_TIME(2000)"))
	}

	entries := []LeaderboardEntry{}
	if err := query.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetImpactSummary reads the impact singleton directly. This is the
// deliberate denormalization: the row is maintained incrementally by the
// scan transaction and never recomputed from the ledger here.
func GetImpactSummary(db *gorm.DB) (*ImpactSummary, error) {
	var impact models.Impact
	if err := db.First(&impact, models.ImpactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ImpactSummary{
		Kg:         impact.TotalKg,
		Families:   impact.FamiliesHelped,
		CO2:        impact.CO2SavedKg,
		Volunteers: impact.Volunteers,
	}, nil
}
