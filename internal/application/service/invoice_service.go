package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/billing"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/internal/domain/enum"
	"github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/pkg/apperror"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// InvoiceService turns carts into numbered invoices
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	customerSvc *CustomerService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, customerSvc *CustomerService) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, customerSvc: customerSvc}
}

// InvoiceItemInput represents one cart line
type InvoiceItemInput struct {
	ProductID *uuid.UUID
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// InvoiceInput represents the create/update invoice input
type InvoiceInput struct {
	CustomerName    string
	CustomerPhone   *string
	CustomerAddress *string
	InvoiceDate     *time.Time

	Items             []InvoiceItemInput
	BillDiscount      decimal.Decimal
	BillDiscountType  enum.DiscountType
	TaxPercent        decimal.Decimal
	OtherCharges      decimal.Decimal
	OtherChargesLabel *string

	PaidAmount  decimal.Decimal
	PaymentMode *string
}

func (in *InvoiceInput) validate() error {
	if in.CustomerName == "" {
		return apperror.NewBadRequestError("Customer name is required")
	}
	if len(in.Items) == 0 {
		return apperror.NewBadRequestError("Invoice needs at least one item")
	}
	for _, item := range in.Items {
		if item.Name == "" {
			return apperror.NewBadRequestError("Item name is required")
		}
		if item.Qty <= 0 {
			return apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewBadRequestError("Item price cannot be negative")
		}
	}
	if in.BillDiscountType != "" && !in.BillDiscountType.Valid() {
		return apperror.NewBadRequestError("Invalid bill discount type")
	}
	if in.PaidAmount.IsNegative() {
		return apperror.NewBadRequestError("Paid amount cannot be negative")
	}
	return nil
}

// CreateInvoice computes the bill breakdown, merges the customer into the
// directory, assigns the next invoice number and persists the invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerSvc.AddCustomer(ctx, &CustomerInput{
		Name:    input.CustomerName,
		Phone:   input.CustomerPhone,
		Address: input.CustomerAddress,
	})
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{}
	s.apply(invoice, input)
	invoice.CustomerID = &customer.ID

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices newest first with pagination and optional search
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoice replaces the invoice contents and recomputes the breakdown.
// The invoice number assigned at creation never changes.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *InvoiceInput) (*entity.Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	customer, err := s.customerSvc.AddCustomer(ctx, &CustomerInput{
		Name:    input.CustomerName,
		Phone:   input.CustomerPhone,
		Address: input.CustomerAddress,
	})
	if err != nil {
		return nil, err
	}

	s.apply(invoice, input)
	invoice.CustomerID = &customer.ID

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// apply writes the input and the computed breakdown onto the invoice,
// leaving identity fields (ID, number) alone.
func (s *InvoiceService) apply(invoice *entity.Invoice, input *InvoiceInput) {
	discountType := input.BillDiscountType
	if discountType == "" {
		discountType = enum.DiscountTypeAmount
	}

	lines := make([]billing.LineItem, len(input.Items))
	items := make([]entity.InvoiceItem, len(input.Items))
	for i, item := range input.Items {
		lines[i] = billing.LineItem{
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
		items[i] = entity.InvoiceItem{
			InvoiceID: invoice.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}

	calc := billing.Calculate(lines, input.BillDiscount, discountType, input.TaxPercent, input.OtherCharges)

	grandTotal := decimal.NewFromInt(calc.GrandTotal)
	due := grandTotal.Sub(input.PaidAmount)
	if due.IsNegative() {
		due = decimal.Zero
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice.CustomerName = input.CustomerName
	invoice.CustomerPhone = input.CustomerPhone
	invoice.CustomerAddress = input.CustomerAddress
	invoice.InvoiceDate = invoiceDate

	invoice.BillDiscount = input.BillDiscount
	invoice.BillDiscountType = discountType
	invoice.TaxPercent = input.TaxPercent
	invoice.OtherCharges = input.OtherCharges
	invoice.OtherChargesLabel = input.OtherChargesLabel

	invoice.Subtotal = calc.Subtotal
	invoice.TotalProductDiscounts = calc.TotalProductDiscounts
	invoice.BillDiscountAmount = calc.BillDiscount
	invoice.TaxAmount = calc.TaxAmount
	invoice.GrandTotal = calc.GrandTotal

	invoice.PaidAmount = input.PaidAmount
	invoice.DueAmount = due
	invoice.PaymentMode = input.PaymentMode
	invoice.IsPaid = due.IsZero()

	invoice.Items = items
}
