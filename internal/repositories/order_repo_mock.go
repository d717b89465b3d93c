package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]models.Order)}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByUser returns the user's orders, newest first.
func (r *MockOrderRepository) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			list = append(list, o)
		}
	}
	sortOrdersDesc(list)
	return list, nil
}

// GetAll returns every order, newest first.
func (r *MockOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, o)
	}
	sortOrdersDesc(list)
	return list, nil
}

// UpdateStatus sets the fulfillment status of an order.
func (r *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	order.OrderStatus = status
	r.orders[id] = order
	return nil
}

// SetPaymentResult records the payment outcome on the matching order.
func (r *MockOrderRepository) SetPaymentResult(ctx context.Context, orderID, userID, paymentID string, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.UserID != userID {
		return models.ErrOrderNotFound
	}
	order.PaymentID = paymentID
	order.PaymentStatus = status
	r.orders[orderID] = order
	return nil
}

// Count returns the number of stored orders.
func (r *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// SuccessfulRevenue sums total_amount over successfully paid orders.
func (r *MockOrderRepository) SuccessfulRevenue(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, o := range r.orders {
		if o.PaymentStatus == models.PaymentSuccess {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func sortOrdersDesc(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
