package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInput() *InvoiceInput {
	return &InvoiceInput{
		CustomerName: "Ravi Traders",
		Items: []InvoiceItemInput{
			{Name: "Cement Bag", Qty: 2, UnitPrice: dec("250"), Discount: dec("10")},
			{Name: "Sand Bag", Qty: 1, UnitPrice: dec("100")},
		},
		BillDiscount:     dec("50"),
		BillDiscountType: enum.DiscountTypeAmount,
		TaxPercent:       dec("5"),
		OtherCharges:     dec("20"),
	}
}

func TestCreateInvoiceComputesBreakdown(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInvoiceService(db)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, sampleInput())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if !inv.Subtotal.Equal(dec("600")) {
		t.Errorf("subtotal = %s, want 600", inv.Subtotal)
	}
	if !inv.TotalProductDiscounts.Equal(dec("50")) {
		t.Errorf("product discounts = %s, want 50", inv.TotalProductDiscounts)
	}
	if !inv.BillDiscountAmount.Equal(dec("50")) {
		t.Errorf("bill discount = %s, want 50", inv.BillDiscountAmount)
	}
	if !inv.TaxAmount.Equal(dec("25")) {
		t.Errorf("tax = %s, want 25", inv.TaxAmount)
	}
	if inv.GrandTotal != 545 {
		t.Errorf("grand total = %d, want 545", inv.GrandTotal)
	}
	if len(inv.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(inv.Items))
	}
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInvoiceService(db)
	ctx := context.Background()

	first, err := svc.CreateInvoice(ctx, sampleInput())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	second, err := svc.CreateInvoice(ctx, sampleInput())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if first.InvoiceNumber != "INV-0001" {
		t.Errorf("first number = %s, want INV-0001", first.InvoiceNumber)
	}
	if second.InvoiceNumber != "INV-0002" {
		t.Errorf("second number = %s, want INV-0002", second.InvoiceNumber)
	}
}

func TestPaidAndDueAmounts(t *testing.T) {
	tests := []struct {
		name     string
		paid     string
		wantDue  string
		wantPaid bool
	}{
		{"unpaid", "0", "545", false},
		{"partially paid", "500", "45", false},
		{"exactly paid", "545", "0", true},
		{"overpaid floors due at zero", "600", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc, _ := newInvoiceService(db)

			input := sampleInput()
			input.PaidAmount = dec(tt.paid)

			inv, err := svc.CreateInvoice(context.Background(), input)
			if err != nil {
				t.Fatalf("CreateInvoice failed: %v", err)
			}
			if !inv.DueAmount.Equal(dec(tt.wantDue)) {
				t.Errorf("due = %s, want %s", inv.DueAmount, tt.wantDue)
			}
			if inv.IsPaid != tt.wantPaid {
				t.Errorf("isPaid = %v, want %v", inv.IsPaid, tt.wantPaid)
			}
		})
	}
}

func TestUpdateInvoiceKeepsNumberAndRecomputes(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInvoiceService(db)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, sampleInput())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	updated := sampleInput()
	updated.Items = []InvoiceItemInput{
		{Name: "Cement Bag", Qty: 1, UnitPrice: dec("250")},
	}
	updated.BillDiscount = decimal.Zero
	updated.TaxPercent = decimal.Zero
	updated.OtherCharges = decimal.Zero

	got, err := svc.UpdateInvoice(ctx, inv.ID, updated)
	if err != nil {
		t.Fatalf("UpdateInvoice failed: %v", err)
	}

	if got.InvoiceNumber != inv.InvoiceNumber {
		t.Errorf("number changed on update: %s -> %s", inv.InvoiceNumber, got.InvoiceNumber)
	}
	if got.GrandTotal != 250 {
		t.Errorf("grand total = %d, want 250", got.GrandTotal)
	}

	reloaded, err := svc.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Errorf("expected items replaced, got %d rows", len(reloaded.Items))
	}
}

func TestCreateInvoiceMergesCustomerDirectory(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInvoiceService(db)
	ctx := context.Background()

	first := sampleInput()
	first.CustomerPhone = strPtr("9876543210")
	if _, err := svc.CreateInvoice(ctx, first); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	// Same customer, different case; must not create a second row
	second := sampleInput()
	second.CustomerName = "RAVI TRADERS"
	if _, err := svc.CreateInvoice(ctx, second); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	var count int64
	if err := db.Model(&entity.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 customer, got %d", count)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInvoiceService(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*InvoiceInput)
	}{
		{"missing customer name", func(in *InvoiceInput) { in.CustomerName = "" }},
		{"no items", func(in *InvoiceInput) { in.Items = nil }},
		{"zero quantity", func(in *InvoiceInput) { in.Items[0].Qty = 0 }},
		{"negative price", func(in *InvoiceInput) { in.Items[0].UnitPrice = dec("-1") }},
		{"negative paid amount", func(in *InvoiceInput) { in.PaidAmount = dec("-1") }},
		{"bad discount type", func(in *InvoiceInput) { in.BillDiscountType = "half-off" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sampleInput()
			tt.mutate(input)
			if _, err := svc.CreateInvoice(ctx, input); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}
