package repositories

import (
	"context"

	"sparemart/internal/models"
)

// BlogRepository defines the interface for blog post data access.
type BlogRepository interface {
	List(ctx context.Context, limit int) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
}
