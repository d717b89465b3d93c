package repositories

import (
	"context"

	"sparemart/internal/models"
)

// ReviewRepository defines the interface for review data access.
// AggregateRating computes the arithmetic mean and count of all ratings for
// a product in the store, so the recompute never pages reviews through the
// application.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	AggregateRating(ctx context.Context, productID string) (avg float64, count int, err error)
}
