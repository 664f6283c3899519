package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/config"
	"github.com/velvetlens/studio-booking/internal/models"
)

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.Session{},
		&models.CalendarEvent{},
		&models.Payment{},
		&models.Coupon{},
		&models.PaymentCoupon{},
		&models.Invoice{},
		&models.GalleryPhoto{},
		&models.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	// Overlapping active events are rejected at the store level too, so a
	// writer that races past the scan still cannot commit a double booking.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE calendar_events
        ADD CONSTRAINT calendar_events_no_overlap
        EXCLUDE USING gist (tstzrange(start_time, end_time) WITH &&)
    `)

	return db
}
