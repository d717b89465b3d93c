package services

import (
	"context"
	"fmt"
	"time"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService creates reviews and keeps the product's derived rating in
// step: after every insert the product's rating equals the mean of all its
// reviews and reviews_count equals their number.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      util.GetLogger(),
	}
}

// Add creates a review for an existing product and synchronously recomputes
// the product's rating. Reviews against unknown products are rejected so no
// dangling reviews can accumulate.
func (s *ReviewService) Add(ctx context.Context, productID, userID, userName string, rating int, comment string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	avg, count, err := s.reviewRepo.AggregateRating(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating: %w", err)
	}
	if err := s.productRepo.SetRating(ctx, productID, avg, count); err != nil {
		return nil, fmt.Errorf("failed to store recomputed rating: %w", err)
	}

	util.ReviewsCreatedTotal.Inc()
	s.logger.Info("review created",
		zap.String("product_id", productID),
		zap.Int("rating", rating),
		zap.Float64("avg", avg),
		zap.Int("count", count))
	return review, nil
}

// ListByProduct returns all reviews for a product.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}
