// scan_service.go
//
// A scalable, high performance drop-in replacement for the ClothCycle nodejs backend
// Copyright (c) 2026 ClothCycle contributors
//
// This file is part of clothcycle-api.
// clothcycle-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// clothcycle-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with clothcycle-api.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardPolicy holds the accrual constants. The original backend hardcoded
// both; here they come from configuration with the same defaults.
type RewardPolicy struct {
	PointsPerItem int64
	CO2Factor     float64
}

// DefaultRewardPolicy matches the original backend: 10 points per item,
// 20 kg of CO2 saved per donated kg.
var DefaultRewardPolicy = RewardPolicy{PointsPerItem: 10, CO2Factor: 20}

// ScanResult is what a successful donation submission returns.
type ScanResult struct {
	AwardedPoints int64    `json:"awardedPoints"`
	NewBadges     []string `json:"newBadges"`
}

// RecordDonation runs the whole reward accrual for one scan as a single
// transaction: insert the donation, bump the user's totals and the global
// impact row, then evaluate the badge catalog against the updated totals.
// Either every step commits or none does; a donation row without the
// matching counter updates would be visible corruption to every reader.
//
// Two concurrent scans by the same user serialize on the locked user row,
// so point/count increments are never lost.
func RecordDonation(db *gorm.DB, policy RewardPolicy, userID uint64, binCode string, items int64, weightKg float64) (*ScanResult, error) {
	if userID == 0 || binCode == "" || items <= 0 || weightKg < 0 {
		return nil, ErrInvalidInput
	}

	result := &ScanResult{NewBadges: []string{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		var bin models.Bin
		if err := tx.Where("bin_code = ?", binCode).First(&bin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		awarded := items * policy.PointsPerItem

		donation := models.Donation{
			UserID:       user.ID,
			BinID:        bin.ID,
			Items:        items,
			WeightKg:     weightKg,
			PointsEarned: awarded,
		}
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"points":    gorm.Expr("points + ?", awarded),
				"donations": gorm.Expr("donations + ?", items),
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Impact{}).Where("id = ?", models.ImpactID).
			Updates(map[string]interface{}{
				"total_kg":        gorm.Expr("total_kg + ?", weightKg),
				"families_helped": gorm.Expr("families_helped + ?", items/2),
				"co2_saved_kg":    gorm.Expr("co2_saved_kg + ?", weightKg*policy.CO2Factor),
			}).Error; err != nil {
			return err
		}

		// Badge evaluation is read-after-write on the totals updated above.
		if err := tx.First(&user, user.ID).Error; err != nil {
			return err
		}

		newBadges, err := awardBadges(tx, &user)
		if err != nil {
			return err
		}

		result.AwardedPoints = awarded
		result.NewBadges = newBadges
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// awardBadges walks the active catalog in order and inserts a UserBadge row
// for every badge whose criteria hold and that the user does not hold yet.
// The existence check plus the (user_id, badge_id) unique index keep the
// award idempotent.
func awardBadges(tx *gorm.DB, user *models.User) ([]string, error) {
	var badges []models.Badge
	if err := tx.Where("is_active = ?", true).Order("id").Find(&badges).Error; err != nil {
		return nil, err
	}

	earned := []string{}
	for _, badge := range badges {
		if !badge.Unlocked(user.Points, user.Donations) {
			continue
		}

		var existing models.UserBadge
		err := tx.Where("user_id = ? AND badge_id = ?", user.ID, badge.ID).
			First(&existing).Error
		if err == nil {
			continue // already awarded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if err := tx.Create(&models.UserBadge{UserID: user.ID, BadgeID: badge.ID}).Error; err != nil {
			return nil, err
		}
		earned = append(earned, badge.Name)
	}

	return earned, nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on server databases. SQLite has no
// row locks; its single-writer transaction lock covers the same hazard.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
