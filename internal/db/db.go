package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tngolf/booking-api/internal/config"
	"github.com/tngolf/booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.BlockedSlot{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Final arbiter for slot claiming: at most one occupying booking
	// per (date, time). The application-level conflict check is only
	// a fast path; a racing claim loses here at commit. Without this
	// index the race stays open, so its creation must not fail quietly.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_occupying_booking
        ON bookings (date, "time")
        WHERE status = 'confirmed' OR payment_status = 'paid'
    `).Error; err != nil {
		log.Fatalf("failed to create occupancy index: %v", err)
	}

	return db
}
