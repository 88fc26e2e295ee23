package service

import (
	"context"

	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/pkg/apperror"
)

// ShopService handles the shop profile
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// GetShop retrieves the shop profile
func (s *ShopService) GetShop(ctx context.Context) (*entity.Shop, error) {
	shop, err := s.shopRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop profile")
	}
	return shop, nil
}

// UpdateShopInput represents the shop profile input
type UpdateShopInput struct {
	Name            string
	Address         *string
	GSTIN           *string
	ProprietaryName *string
	MobileNo        *string
}

// SaveShop creates or replaces the shop profile
func (s *ShopService) SaveShop(ctx context.Context, input *UpdateShopInput) (*entity.Shop, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Shop name is required")
	}

	shop, err := s.shopRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		shop = &entity.Shop{}
	}

	shop.Name = input.Name
	shop.Address = input.Address
	shop.GSTIN = input.GSTIN
	shop.ProprietaryName = input.ProprietaryName
	shop.MobileNo = input.MobileNo

	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}
