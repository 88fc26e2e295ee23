package repository

import (
	"context"

	"github.com/tusharj/bizbill-api/internal/domain/entity"
)

// ShopRepository defines the interface for the single shop profile record
type ShopRepository interface {
	// Get returns the shop profile, or (nil, nil) if none has been saved yet
	Get(ctx context.Context) (*entity.Shop, error)
	Save(ctx context.Context, shop *entity.Shop) error
}
