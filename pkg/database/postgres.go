package database

import (
	"log"
	"time"

	"github.com/eventpass/attendance-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Assistance{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one occupying registration (pending/approved/
	// attended) per user per event. Cancelled records stay revivable and
	// rejected records do not block a fresh registration.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assistance_active
		ON assistances (event_id, user_id)
		WHERE status NOT IN ('cancelled', 'rejected')
	`)

	return db
}
