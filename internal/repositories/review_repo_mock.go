package repositories

import (
	"context"
	"sync"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews []models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

// Create adds a new review.
func (r *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// ListByProduct returns all reviews for a product.
func (r *MockReviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			list = append(list, rv)
		}
	}
	return list, nil
}

// AggregateRating computes mean rating and review count.
func (r *MockReviewRepository) AggregateRating(ctx context.Context, productID string) (float64, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
