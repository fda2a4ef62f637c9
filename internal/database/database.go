package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/najino/Cooko-application-api/config"
	"github.com/najino/Cooko-application-api/internal/models"
)

const connectAttempts = 3

// New creates a new database connection, retrying transient failures a
// bounded number of times before giving up.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	log.Printf("[Database] Connecting to %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		log.Printf("[Database] Connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Printf("[Database] Successfully connected to database")
	return db, nil
}

// Migrate applies the schema for all catalog models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close closes the underlying connection pool. Best effort: failures are
// logged, not returned, so shutdown never fails on disconnect.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[Database] Error getting database handle on close: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[Database] Error closing database connection: %v", err)
		return
	}
	log.Printf("[Database] Database connection closed")
}
