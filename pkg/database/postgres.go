package database

import (
	"log"

	"github.com/bookfast/bookfast/internal/models"
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

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Ticket{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// CHECK constraint backing the inventory invariant: the sold counter can
	// never leave [0, total_tickets] even if a future code path skips the lock
	db.Exec(`ALTER TABLE events DROP CONSTRAINT IF EXISTS chk_events_tickets_sold`)
	db.Exec(`
		ALTER TABLE events
		ADD CONSTRAINT chk_events_tickets_sold
		CHECK (tickets_sold >= 0 AND tickets_sold <= total_tickets)
	`)

	return db
}
