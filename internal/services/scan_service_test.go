package services_test

import (
	"errors"
	"testing"

	"github.com/clothcycle/clothcycle-api/internal/database"
	"github.com/clothcycle/clothcycle-api/internal/models"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full schema and
// reference data (impact singleton, badge catalog, demo bins).
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every pooled connection to :memory: would get its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "irrelevant"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// TestRecordDonationAccrual checks one scan end to end: points, user totals,
// the ledger row, the impact increments and the first-donation badge.
func TestRecordDonationAccrual(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	result, err := services.RecordDonation(db, services.DefaultRewardPolicy, user.ID, "BIN001", 3, 1.5)
	if err != nil {
		t.Fatalf("RecordDonation failed: %v", err)
	}

	if result.AwardedPoints != 30 {
		t.Errorf("Expected 30 awarded points, got %d", result.AwardedPoints)
	}
	if len(result.NewBadges) != 1 || result.NewBadges[0] != "First Donation" {
		t.Errorf("Expected [First Donation], got %v", result.NewBadges)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if fresh.Points != 30 {
		t.Errorf("Expected user points 30, got %d", fresh.Points)
	}
	if fresh.Donations != 3 {
		t.Errorf("Expected user donations 3, got %d", fresh.Donations)
	}

	var donation models.Donation
	if err := db.Where("user_id = ?", user.ID).First(&donation).Error; err != nil {
		t.Fatalf("Expected a donation row: %v", err)
	}
	if donation.Items != 3 || donation.WeightKg != 1.5 || donation.PointsEarned != 30 {
		t.Errorf("Unexpected donation row: %+v", donation)
	}

	var impact models.Impact
	if err := db.First(&impact, models.ImpactID).Error; err != nil {
		t.Fatalf("Failed to load impact singleton: %v", err)
	}
	if impact.TotalKg != 1.5 {
		t.Errorf("Expected impact total_kg 1.5, got %v", impact.TotalKg)
	}
	if impact.FamiliesHelped != 1 {
		t.Errorf("Expected families_helped 1, got %d", impact.FamiliesHelped)
	}
	if impact.CO2SavedKg != 30 {
		t.Errorf("Expected co2_saved_kg 30, got %v", impact.CO2SavedKg)
	}
}

// TestRecordDonationRejectsInvalidInput makes sure a rejected scan leaves no
// trace in the ledger or the counters.
func TestRecordDonationRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Bob", "bob@example.com")

	cases := []struct {
		name     string
		userID   uint64
		binCode  string
		items    int64
		weightKg float64
	}{
		{"zero items", user.ID, "BIN001", 0, 1},
		{"negative items", user.ID, "BIN001", -2, 1},
		{"negative weight", user.ID, "BIN001", 3, -0.5},
		{"empty bin code", user.ID, "", 3, 1},
		{"zero user", 0, "BIN001", 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.RecordDonation(db, services.DefaultRewardPolicy, tc.userID, tc.binCode, tc.items, tc.weightKg)
			if !errors.Is(err, services.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected empty ledger after rejected scans, got %d rows", count)
	}

	var impact models.Impact
	db.First(&impact, models.ImpactID)
	if impact.TotalKg != 0 || impact.FamiliesHelped != 0 || impact.CO2SavedKg != 0 {
		t.Errorf("Expected untouched impact row, got %+v", impact)
	}
}

func TestRecordDonationUnknownBin(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Cora", "cora@example.com")

	_, err := services.RecordDonation(db, services.DefaultRewardPolicy, user.ID, "NOSUCH", 1, 0.5)
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown bin, got %v", err)
	}

	var count int64
	db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no donation rows, got %d", count)
	}
}

func TestRecordDonationUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.RecordDonation(db, services.DefaultRewardPolicy, 9999, "BIN001", 1, 0.5)
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

// TestBadgesAwardedOnce walks a user across every catalog threshold and
// checks each badge is reported exactly once.
func TestBadgesAwardedOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Dana", "dana@example.com")

	// 5 items: 50 points, 5 donations. Only First Donation unlocks.
	first, err := services.RecordDonation(db, services.DefaultRewardPolicy, user.ID, "BIN001", 5, 2)
	if err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
	if len(first.NewBadges) != 1 || first.NewBadges[0] != "First Donation" {
		t.Errorf("Expected [First Donation], got %v", first.NewBadges)
	}

	// 5 more: 100 points, 10 donations. Eco Supporter and Dedicated Donor
	// unlock together, in catalog order.
	second, err := services.RecordDonation(db, services.DefaultRewardPolicy, user.ID, "BIN002", 5, 2)
	if err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}
	if len(second.NewBadges) != 2 ||
		second.NewBadges[0] != "Eco Supporter" ||
		second.NewBadges[1] != "Dedicated Donor" {
		t.Errorf("Expected [Eco Supporter Dedicated Donor], got %v", second.NewBadges)
	}

	// Everything already held, nothing new to report.
	third, err := services.RecordDonation(db, services.DefaultRewardPolicy, user.ID, "BIN003", 5, 2)
	if err != nil {
		t.Fatalf("Third scan failed: %v", err)
	}
	if len(third.NewBadges) != 0 {
		t.Errorf("Expected no new badges, got %v", third.NewBadges)
	}

	var count int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 3 {
		t.Errorf("Expected 3 user_badges rows, got %d", count)
	}
}

// TestRecordDonationCustomPolicy checks the configurable accrual constants.
func TestRecordDonationCustomPolicy(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Eli", "eli@example.com")

	policy := services.RewardPolicy{PointsPerItem: 25, CO2Factor: 5}
	result, err := services.RecordDonation(db, policy, user.ID, "BIN001", 2, 4)
	if err != nil {
		t.Fatalf("RecordDonation failed: %v", err)
	}
	if result.AwardedPoints != 50 {
		t.Errorf("Expected 50 awarded points, got %d", result.AwardedPoints)
	}

	var impact models.Impact
	db.First(&impact, models.ImpactID)
	if impact.CO2SavedKg != 20 {
		t.Errorf("Expected co2_saved_kg 20, got %v", impact.CO2SavedKg)
	}
}
