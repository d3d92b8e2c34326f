package service

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService handles product reads and catalog submissions.
type CatalogService struct {
	products ProductStore
	cache    ProductCache
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(products ProductStore, cache ProductCache) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache,
		logger:   util.GetLogger(),
	}
}

// CreateProduct validates and stores a new listing
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if product.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if product.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if product.ManagerEmail == "" {
		return fmt.Errorf("%w: manager email is required", ErrValidation)
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("manager_email", product.ManagerEmail))
	return nil
}

// GetProduct retrieves a product, cache first.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	cached, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		s.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warn("Product cache write failed", zap.Int64("product_id", id), zap.Error(err))
	}

	return product, nil
}

// ListProducts returns all products, or those owned by a seller when
// managerEmail is set.
func (s *CatalogService) ListProducts(ctx context.Context, managerEmail string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if managerEmail != "" {
		return s.products.GetProductsByManager(ctx, managerEmail)
	}
	return s.products.GetProducts(ctx)
}
