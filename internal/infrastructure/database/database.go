package database

import (
	"fmt"
	"log"

	"github.com/tusharj/bizbill-api/internal/config"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database configured by cfg.Driver. A single shop runs on
// the embedded sqlite file by default; postgres is for hosted deployments.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	log.Printf("Successfully connected to %s database", cfg.Driver)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Shop{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Counter{},
		&entity.KeyValue{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the invoice counter row if it does not exist
func SeedDefaultData(db *gorm.DB) error {
	var counter entity.Counter
	if err := db.Where("name = ?", entity.CounterInvoice).First(&counter).Error; err != nil {
		counter = entity.Counter{Name: entity.CounterInvoice, Value: 1}
		if err := db.Create(&counter).Error; err != nil {
			return fmt.Errorf("failed to seed invoice counter: %w", err)
		}
	}
	return nil
}
