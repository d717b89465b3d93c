package repositories

import (
	"context"

	"sparemart/internal/models"
)

// ProductRepository defines the interface for product data access.
// SetRating is the write half of the review aggregation: it overwrites the
// derived rating and review count in one update.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	SetRating(ctx context.Context, id string, rating float64, count int) error
	Count(ctx context.Context) (int64, error)
}

// CatalogRepository serves the read-only category and brand listings.
type CatalogRepository interface {
	ListCategories(ctx context.Context, typ string) ([]models.Category, error)
	ListBrands(ctx context.Context, typ string) ([]models.Brand, error)
}
