package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns products with page-based pagination, filtered by an
	// optional case-insensitive name search
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
}
