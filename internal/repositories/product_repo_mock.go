package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]models.Product)}
}

// List returns products matching the filter.
func (r *MockProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	list := []models.Product{}
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		list = append(list, p)
		if len(list) >= limit {
			break
		}
	}
	return list, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product's editable fields.
func (r *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return models.ErrProductNotFound
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Category = product.Category
	existing.Brand = product.Brand
	existing.Price = product.Price
	existing.DiscountPrice = product.DiscountPrice
	existing.Image = product.Image
	existing.Stock = product.Stock
	r.products[product.ID] = existing
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// SetRating overwrites the derived rating fields.
func (r *MockProductRepository) SetRating(ctx context.Context, id string, rating float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	product.Rating = rating
	product.ReviewsCount = count
	r.products[id] = product
	return nil
}

// Count returns the number of stored products.
func (r *MockProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
type MockCatalogRepository struct {
	Categories []models.Category
	Brands     []models.Brand
	mu         sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{}
}

// ListCategories returns categories, optionally filtered by type.
func (r *MockCatalogRepository) ListCategories(ctx context.Context, typ string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Category{}
	for _, c := range r.Categories {
		if typ == "" || c.Type == typ {
			list = append(list, c)
		}
	}
	return list, nil
}

// ListBrands returns brands, optionally filtered by type.
func (r *MockCatalogRepository) ListBrands(ctx context.Context, typ string) ([]models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Brand{}
	for _, b := range r.Brands {
		if typ == "" || b.Type == typ {
			list = append(list, b)
		}
	}
	return list, nil
}
