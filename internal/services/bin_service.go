package services

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/gorm"
)

// ListBins returns the whole registry, oldest first.
func ListBins(db *gorm.DB) ([]models.Bin, error) {
	bins := []models.Bin{}
	if err := db.Order("id").Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

// GetBinByCode resolves a bin by its human-facing code.
func GetBinByCode(db *gorm.DB, binCode string) (*models.Bin, error) {
	var bin models.Bin
	if err := db.Where("bin_code = ?", binCode).First(&bin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bin, nil
}
