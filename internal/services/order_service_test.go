package services_test

import (
	"context"
	"testing"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/services"

	"github.com/stretchr/testify/assert"
)

func testAddress() models.Address {
	return models.Address{
		Name:    "Test User",
		Phone:   "555-0100",
		Street:  "1 Main St",
		City:    "Pune",
		State:   "MH",
		Pincode: "411001",
	}
}

func newOrderService(t *testing.T) (*services.OrderService, *repositories.MockOrderRepository, *repositories.MockCartRepository, *repositories.MockProductRepository, *repositories.MockUserRepository) {
	t.Helper()
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	svc := services.NewOrderService(orderRepo, cartRepo, userRepo, productRepo, nil)
	return svc, orderRepo, cartRepo, productRepo, userRepo
}

func TestOrderService_CreateFreezesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, cartRepo, _, _ := newOrderService(t)

	assert.NoError(t, cartRepo.AddItem(ctx, "user-1", "prod-1", 2))

	items := []models.OrderItem{
		{ProductID: "prod-1", ProductName: "Brake Pad", Quantity: 2, Price: 45.0},
	}
	order, err := svc.Create(ctx, "user-1", items, 90.0, testAddress())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.OrderProcessing, order.OrderStatus)
	assert.Equal(t, 90.0, order.TotalAmount)
	assert.Equal(t, items, order.Items)

	// Checkout empties the cart.
	cart, err := cartRepo.GetOrCreate(ctx, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, err := orderRepo.GetByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)
}

func TestOrderService_ListByUserIsScoped(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newOrderService(t)

	items := []models.OrderItem{{ProductID: "prod-1", ProductName: "Wiper", Quantity: 1, Price: 10.0}}
	_, err := svc.Create(ctx, "user-1", items, 10.0, testAddress())
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", items, 10.0, testAddress())
	assert.NoError(t, err)

	mine, err := svc.ListByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "user-1", mine[0].UserID)

	all, err := svc.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, _, _, _ := newOrderService(t)

	items := []models.OrderItem{{ProductID: "prod-1", ProductName: "Wiper", Quantity: 1, Price: 10.0}}
	order, err := svc.Create(ctx, "user-1", items, 10.0, testAddress())
	assert.NoError(t, err)

	assert.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderShipped))
	stored, err := orderRepo.GetByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderShipped, stored[0].OrderStatus)

	// Unknown status values are rejected before touching the store.
	err = svc.UpdateStatus(ctx, order.ID, models.OrderStatus("teleported"))
	assert.ErrorIs(t, err, models.ErrInvalidOrderStatus)

	err = svc.UpdateStatus(ctx, "no-such-order", models.OrderShipped)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, _, productRepo, userRepo := newOrderService(t)

	assert.NoError(t, userRepo.Create(ctx, &models.User{Email: "a@example.com"}))
	assert.NoError(t, productRepo.Create(ctx, &models.Product{Name: "Brake Pad"}))
	assert.NoError(t, productRepo.Create(ctx, &models.Product{Name: "Oil Filter"}))

	items := []models.OrderItem{{ProductID: "prod-1", ProductName: "Brake Pad", Quantity: 1, Price: 45.0}}
	paid, err := svc.Create(ctx, "user-1", items, 45.0, testAddress())
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", items, 45.0, testAddress())
	assert.NoError(t, err)

	// Revenue counts only successfully paid orders.
	assert.NoError(t, orderRepo.SetPaymentResult(ctx, paid.ID, "user-1", "pay-1", models.PaymentSuccess))

	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, 45.0, stats.TotalRevenue)
}
