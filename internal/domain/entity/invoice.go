package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tusharj/bizbill-api/internal/domain/enum"
)

// Invoice is the persisted, numbered snapshot of a finalized bill. The
// customer fields are copied in at save time so later directory edits do
// not rewrite history; updates replace the whole record and recompute the
// embedded breakdown, but the invoice number never changes.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string     `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	CustomerName    string  `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   *string `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress *string `gorm:"type:text" json:"customer_address,omitempty"`

	InvoiceDate time.Time `gorm:"not null" json:"invoice_date"`

	BillDiscount      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"bill_discount"`
	BillDiscountType  enum.DiscountType `gorm:"size:20;default:'amount'" json:"bill_discount_type"`
	TaxPercent        decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"tax_percent"`
	OtherCharges      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"other_charges"`
	OtherChargesLabel *string           `gorm:"size:255" json:"other_charges_label,omitempty"`

	// Breakdown embedded from the calculation at save time.
	Subtotal              decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TotalProductDiscounts decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_product_discounts"`
	BillDiscountAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"bill_discount_amount"`
	TaxAmount             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	GrandTotal            int64           `gorm:"default:0" json:"grand_total"` // whole currency units

	PaidAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount"`
	DueAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"due_amount"`
	PaymentMode *string         `gorm:"size:50" json:"payment_mode,omitempty"`
	IsPaid      bool            `gorm:"default:false" json:"is_paid"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one product line frozen into an invoice
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Discount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"` // percent 0-100
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
