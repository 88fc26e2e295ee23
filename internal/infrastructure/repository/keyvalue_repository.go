package repository

import (
	"context"
	"errors"

	"github.com/tusharj/bizbill-api/internal/domain/entity"
	domainRepo "github.com/tusharj/bizbill-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type keyValueRepository struct {
	db *gorm.DB
}

// NewKeyValueRepository creates a new key-value repository
func NewKeyValueRepository(db *gorm.DB) domainRepo.KeyValueRepository {
	return &keyValueRepository{db: db}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var row entity.KeyValue
	err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key, value string) error {
	row := entity.KeyValue{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&entity.KeyValue{}, "key = ?", key).Error
}
