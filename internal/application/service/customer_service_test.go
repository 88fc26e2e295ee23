package service

import (
	"context"
	"testing"

	infraRepo "github.com/tusharj/bizbill-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func newCustomerService(db *gorm.DB) *CustomerService {
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	return NewCustomerService(customerRepo, invoiceRepo)
}

func TestAddCustomerCreatesNewEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	customer, err := svc.AddCustomer(context.Background(), &CustomerInput{
		Name:  "Anita Stores",
		Phone: strPtr("9000000001"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}
	if customer.Name != "Anita Stores" {
		t.Errorf("name = %s", customer.Name)
	}
	if customer.Phone == nil || *customer.Phone != "9000000001" {
		t.Errorf("phone not saved: %v", customer.Phone)
	}
}

func TestAddCustomerReusesMatchByName(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	first, err := svc.AddCustomer(ctx, &CustomerInput{Name: "Anita Stores"})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	// Case-insensitive match, and the missing phone gets filled in
	second, err := svc.AddCustomer(ctx, &CustomerInput{
		Name:  "anita stores",
		Phone: strPtr("9000000001"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected existing customer reused, got new id")
	}
	if second.Phone == nil || *second.Phone != "9000000001" {
		t.Errorf("expected phone backfilled, got %v", second.Phone)
	}
}

func TestAddCustomerReusesMatchByPhone(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	first, err := svc.AddCustomer(ctx, &CustomerInput{
		Name:  "Anita Stores",
		Phone: strPtr("9000000001"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	// Different name spelling, same phone
	second, err := svc.AddCustomer(ctx, &CustomerInput{
		Name:  "Anita General Stores",
		Phone: strPtr("9000000001"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected phone match to reuse customer")
	}
}

func TestAddCustomerDoesNotOverwriteExistingFields(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	_, err := svc.AddCustomer(ctx, &CustomerInput{
		Name:    "Anita Stores",
		Phone:   strPtr("9000000001"),
		Address: strPtr("12 Market Road"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	got, err := svc.AddCustomer(ctx, &CustomerInput{
		Name:    "Anita Stores",
		Phone:   strPtr("9111111111"),
		Address: strPtr("New Address"),
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	if *got.Phone != "9000000001" {
		t.Errorf("existing phone overwritten: %s", *got.Phone)
	}
	if *got.Address != "12 Market Road" {
		t.Errorf("existing address overwritten: %s", *got.Address)
	}
}

func TestDeleteCustomerKeepsInvoices(t *testing.T) {
	db := newTestDB(t)
	invoiceSvc, customerSvc := newInvoiceService(db)
	ctx := context.Background()

	inv, err := invoiceSvc.CreateInvoice(ctx, sampleInput())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if err := customerSvc.DeleteCustomer(ctx, *inv.CustomerID); err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}

	got, err := invoiceSvc.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if got.CustomerName != "Ravi Traders" {
		t.Errorf("copied customer name lost: %s", got.CustomerName)
	}
}
