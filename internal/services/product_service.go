package services

import (
	"context"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
)

// ProductService handles business logic for the product catalog, including
// category and brand listings.
type ProductService struct {
	productRepo repositories.ProductRepository
	catalogRepo repositories.CatalogRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, catalogRepo repositories.CatalogRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
	}
}

// List retrieves products matching the filter.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// Create adds a new product to the catalog.
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	return s.productRepo.Create(ctx, product)
}

// Update modifies an existing product's editable fields.
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	return s.productRepo.Update(ctx, product)
}

// Delete removes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// ListCategories returns categories, optionally filtered by type.
func (s *ProductService) ListCategories(ctx context.Context, typ string) ([]models.Category, error) {
	return s.catalogRepo.ListCategories(ctx, typ)
}

// ListBrands returns brands, optionally filtered by type.
func (s *ProductService) ListBrands(ctx context.Context, typ string) ([]models.Brand, error) {
	return s.catalogRepo.ListBrands(ctx, typ)
}
