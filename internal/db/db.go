// Package db opens the backing store, runs schema migrations and seeds
// reference data for development.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SYPclub/facture-flow/internal/models"
)

// Connect opens the database selected by the DSN: postgres:// URLs open
// PostgreSQL (with a short retry loop so the container has time to start),
// anything else is treated as a SQLite path.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(strings.Trim(dsn, "\"'"))
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				return db, nil
			}
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("database connection failed after retries: %w", err)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// Migrate applies the gorm schema for every persisted model.
func Migrate(db *gorm.DB) error {
	for _, m := range models.AllModels() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// ConnectAndMigrate is the common startup path.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
