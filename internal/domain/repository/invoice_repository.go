package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// InvoiceTotals holds aggregate figures over all invoices
type InvoiceTotals struct {
	Count   int64
	Revenue int64
	Due     decimal.Decimal
	Unpaid  int64
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Create persists the invoice and its items in one transaction,
	// assigning the next number from the invoice counter
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID returns the invoice with its items preloaded, or (nil, nil)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// Update replaces the invoice record and its items. The invoice number
	// is left untouched.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// List returns invoices newest first with page-based pagination,
	// filtered by an optional search over number and customer name
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Invoice, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error)
	// Totals returns aggregate invoice figures for the dashboard
	Totals(ctx context.Context) (InvoiceTotals, error)
	// RevenueBetween sums grand totals for invoices dated in [from, to)
	RevenueBetween(ctx context.Context, from, to time.Time) (int64, error)
}
