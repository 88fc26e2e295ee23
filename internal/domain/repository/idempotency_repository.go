package repository

import (
	"context"

	"github.com/tusharj/bizbill-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	// GetByKey returns the stored key scoped to a device, or (nil, nil)
	GetByKey(ctx context.Context, key, deviceID string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, record *entity.IdempotencyKey) error
	// DeleteExpired removes keys past their expiry time
	DeleteExpired(ctx context.Context) error
}
