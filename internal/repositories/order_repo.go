package repositories

import (
	"context"

	"sparemart/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable after creation except for the two status fields.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	SetPaymentResult(ctx context.Context, orderID, userID, paymentID string, status models.PaymentStatus) error
	Count(ctx context.Context) (int64, error)
	SuccessfulRevenue(ctx context.Context) (float64, error)
}
