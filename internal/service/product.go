package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"toystore-api/internal/apperr"
	"toystore-api/internal/model"
	"toystore-api/internal/repository"
)

type ProductService interface {
	ListProducts(ctx context.Context, includeOutOfStock bool) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	UpdateStock(ctx context.Context, productID uint, quantity int) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, includeOutOfStock bool) ([]*model.Product, error) {
	return s.productRepo.List(ctx, includeOutOfStock)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateStock(ctx context.Context, productID uint, quantity int) error {
	if quantity < 0 {
		return apperr.Validation("stock quantity cannot be negative")
	}

	err := s.productRepo.SetStock(ctx, productID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("product not found")
	}
	return err
}
