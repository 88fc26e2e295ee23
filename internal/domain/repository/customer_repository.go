package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer directory operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// FindMatch returns an existing customer whose name matches
	// case-insensitively or whose phone matches exactly, or (nil, nil)
	FindMatch(ctx context.Context, name string, phone *string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
