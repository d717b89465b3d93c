package services_test

import (
	"context"
	"testing"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestReviewService_AddRecomputesRating(t *testing.T) {
	ctx := context.Background()
	reviewRepo := repositories.NewMockReviewRepository()
	productRepo := repositories.NewMockProductRepository()
	svc := services.NewReviewService(reviewRepo, productRepo)

	product := &models.Product{ID: "prod-1", Name: "Brake Pad"}
	assert.NoError(t, productRepo.Create(ctx, product))

	review, err := svc.Add(ctx, "prod-1", "user-1", "Alice", 5, "great fit")
	assert.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "Alice", review.UserName)

	stored, err := productRepo.GetByID(ctx, "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, stored.Rating)
	assert.Equal(t, 1, stored.ReviewsCount)

	// A second review moves the rating to the mean.
	_, err = svc.Add(ctx, "prod-1", "user-2", "Bob", 3, "ok")
	assert.NoError(t, err)

	stored, err = productRepo.GetByID(ctx, "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, 4.0, stored.Rating)
	assert.Equal(t, 2, stored.ReviewsCount)
}

func TestReviewService_RejectsUnknownProduct(t *testing.T) {
	ctx := context.Background()
	reviewRepo := repositories.NewMockReviewRepository()
	productRepo := repositories.NewMockProductRepository()
	svc := services.NewReviewService(reviewRepo, productRepo)

	_, err := svc.Add(ctx, "no-such-product", "user-1", "Alice", 4, "")
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	// No dangling review was written.
	reviews, err := reviewRepo.ListByProduct(ctx, "no-such-product")
	assert.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	reviewRepo := repositories.NewMockReviewRepository()
	productRepo := repositories.NewMockProductRepository()
	svc := services.NewReviewService(reviewRepo, productRepo)

	assert.NoError(t, productRepo.Create(ctx, &models.Product{ID: "prod-1", Name: "Brake Pad"}))
	assert.NoError(t, productRepo.Create(ctx, &models.Product{ID: "prod-2", Name: "Oil Filter"}))

	_, err := svc.Add(ctx, "prod-1", "user-1", "Alice", 5, "")
	assert.NoError(t, err)
	_, err = svc.Add(ctx, "prod-2", "user-1", "Alice", 2, "")
	assert.NoError(t, err)

	reviews, err := svc.ListByProduct(ctx, "prod-1")
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "prod-1", reviews[0].ProductID)
}
