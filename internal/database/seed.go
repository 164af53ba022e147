package database

import (
	"log"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// achievementCatalog is the persisted badge catalog. IDs are stable because
// the scan service reports badges in catalog order and the original database
// seeded the same three rows.
var achievementCatalog = []models.Badge{
	{ID: 1, Name: "First Donation", Description: "Made your very first donation", Icon: "🎉", CriteriaType: models.CriteriaDonations, CriteriaValue: 1, IsActive: true},
	{ID: 2, Name: "Eco Supporter", Description: "Collected 100 points", Icon: "🌱", CriteriaType: models.CriteriaPoints, CriteriaValue: 100, IsActive: true},
	{ID: 3, Name: "Dedicated Donor", Description: "Donated 10 items or more", Icon: "💚", CriteriaType: models.CriteriaDonations, CriteriaValue: 10, IsActive: true},
}

// demoBins is only inserted into an empty registry so a fresh install has
// something to scan against.
var demoBins = []models.Bin{
	{BinCode: "BIN001", Name: "Central Park Bin", Address: "12 Green Street", Latitude: 52.5200, Longitude: 13.4050, Details: datatypes.JSON(`{"materials":["clothing","shoes"],"hours":"24/7"}`)},
	{BinCode: "BIN002", Name: "Riverside Mall Bin", Address: "3 Harbor Road", Latitude: 52.5090, Longitude: 13.3760, Details: datatypes.JSON(`{"materials":["clothing","textiles"],"hours":"08:00-22:00"}`)},
	{BinCode: "BIN003", Name: "North Station Bin", Address: "77 Station Square", Latitude: 52.5310, Longitude: 13.3850, Details: datatypes.JSON(`{"materials":["clothing"],"hours":"24/7"}`)},
}

// Seed makes sure the reference data the service depends on exists:
// the impact singleton, the achievement badge catalog and, on a fresh
// database, a handful of demo bins. It is idempotent.
func Seed(db *gorm.DB) error {
	// Impact singleton
	impact := models.Impact{ID: models.ImpactID}
	if err := db.FirstOrCreate(&impact, models.Impact{ID: models.ImpactID}).Error; err != nil {
		return err
	}

	// Badge catalog
	for _, badge := range achievementCatalog {
		b := badge
		if err := db.FirstOrCreate(&b, models.Badge{ID: badge.ID}).Error; err != nil {
			return err
		}
	}

	// Demo bins, only when the registry is empty
	var binCount int64
	if err := db.Model(&models.Bin{}).Count(&binCount).Error; err != nil {
		return err
	}
	if binCount == 0 {
		bins := make([]models.Bin, len(demoBins))
		copy(bins, demoBins)
		if err := db.Create(&bins).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d demo bins", len(bins))
	}

	return nil
}
