package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/pkg/apperror"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// CustomerService handles the customer directory
type CustomerService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, invoiceRepo: invoiceRepo}
}

// CustomerInput represents the customer input
type CustomerInput struct {
	Name    string
	Phone   *string
	Address *string
}

// AddCustomer merges the input into the directory. A customer matching by
// case-insensitive name or by phone is reused, with any missing phone or
// address filled in from the input; otherwise a new entry is created.
func (s *CustomerService) AddCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	existing, err := s.customerRepo.FindMatch(ctx, name, input.Phone)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		changed := false
		if existing.Phone == nil && input.Phone != nil && *input.Phone != "" {
			existing.Phone = input.Phone
			changed = true
		}
		if existing.Address == nil && input.Address != nil && *input.Address != "" {
			existing.Address = input.Address
			changed = true
		}
		if changed {
			if err := s.customerRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	customer := &entity.Customer{
		Name:    name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerInvoices returns a customer's invoices, newest first
func (s *CustomerService) GetCustomerInvoices(ctx context.Context, id uuid.UUID) ([]entity.Invoice, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.invoiceRepo.ListByCustomer(ctx, id)
}

// ListCustomers lists customers with pagination and optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Address *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Customer name is required")
		}
		customer.Name = name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Their invoices survive with the
// customer details that were copied in at billing time.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
