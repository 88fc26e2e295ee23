package service

import (
	"fmt"
	"testing"

	"github.com/tusharj/bizbill-api/internal/domain/entity"
	infraRepo "github.com/tusharj/bizbill-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newInvoiceService wires an invoice service with its customer dependency
// against the given database.
func newInvoiceService(db *gorm.DB) (*InvoiceService, *CustomerService) {
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	customerSvc := NewCustomerService(customerRepo, invoiceRepo)
	return NewInvoiceService(invoiceRepo, customerSvc), customerSvc
}

func strPtr(s string) *string {
	return &s
}
