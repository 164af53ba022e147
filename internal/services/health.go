package services

import (
	"fmt"
	"log"

	"github.com/clothcycle/clothcycle-api/internal/config"
	"github.com/clothcycle/clothcycle-api/internal/models"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies database connectivity and that the seeded reference
// data (the impact singleton) is in place.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	var impact models.Impact
	if err := db.First(&impact, models.ImpactID).Error; err != nil {
		result.Status = "unhealthy"
		result.Details["impact_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Impact singleton missing: %v", err)
		log.Printf("Health check failed - impact singleton: %v", err)
		return result
	}

	log.Println("Health check passed - all systems operational")
	return result
}
