package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/util"
	"sparemart/pkg/rabbitmq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles business logic for the checkout pipeline.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	userRepo  repositories.UserRepository
	prodRepo  repositories.ProductRepository
	mqClient  *rabbitmq.Client
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. The RabbitMQ client may be nil
// when no broker is configured; events are then skipped.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, userRepo repositories.UserRepository, prodRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		prodRepo:  prodRepo,
		mqClient:  mqClient,
		logger:    util.GetLogger(),
	}
}

// Create freezes the submitted items into an immutable order with
// payment_status pending and order_status processing, then clears the
// user's cart. Items and total are recorded as submitted by the client;
// there is no recomputation against current catalog pricing.
//
// The cart clear is not transactional with the order insert: if it fails
// the order still stands and the failure is only logged, so a client retry
// of the (idempotent) clear can finish the job.
func (s *OrderService) Create(ctx context.Context, userID string, items []models.OrderItem, totalAmount float64, address models.Address) (*models.Order, error) {
	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderProcessing,
		ShippingAddress: address,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	util.OrdersCreatedTotal.Inc()

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("order_id", order.ID),
			zap.String("user_id", userID),
			zap.Error(err))
	}

	s.publish("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
		"status":   order.OrderStatus,
	})

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", totalAmount))
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin only at the route level.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// UpdateStatus sets the fulfillment status of an order. The value must be a
// known status; the sequence of transitions is deliberately not enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return models.ErrInvalidOrderStatus
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.publish("order.status_updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}

// Stats assembles the admin dashboard counters.
func (s *OrderService) Stats(ctx context.Context) (*models.AdminStats, error) {
	products, err := s.prodRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	revenue, err := s.orderRepo.SuccessfulRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	return &models.AdminStats{
		TotalProducts: products,
		TotalOrders:   orders,
		TotalUsers:    users,
		TotalRevenue:  revenue,
	}, nil
}

func (s *OrderService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("failed to marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
