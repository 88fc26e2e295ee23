package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	domainRepo "github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create assigns the next invoice number and persists the invoice with its
// items in one transaction. The counter row is locked for the duration so
// concurrent creates cannot take the same number.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter entity.Counter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "name = ?", entity.CounterInvoice).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = entity.Counter{Name: entity.CounterInvoice, Value: 1}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		invoice.InvoiceNumber = fmt.Sprintf("INV-%04d", counter.Value)

		counter.Value++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		return tx.Create(invoice).Error
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Preload("Items").First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// Update replaces the stored invoice and its item rows. Items are deleted
// and re-inserted rather than diffed.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.InvoiceItem{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(invoice_number) LIKE ? OR LOWER(customer_name) LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Items").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Totals(ctx context.Context) (domainRepo.InvoiceTotals, error) {
	var totals domainRepo.InvoiceTotals

	model := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if err := model.Count(&totals.Count).Error; err != nil {
		return totals, err
	}

	var row struct {
		Revenue int64
		Due     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(grand_total), 0) AS revenue, COALESCE(SUM(due_amount), 0) AS due").
		Scan(&row).Error
	if err != nil {
		return totals, err
	}
	totals.Revenue = row.Revenue
	totals.Due = row.Due

	err = r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("is_paid = ?", false).
		Count(&totals.Unpaid).Error

	return totals, err
}

func (r *invoiceRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("invoice_date >= ? AND invoice_date < ?", from, to).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&revenue).Error
	return revenue, err
}
