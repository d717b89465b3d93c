package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/services"

	"github.com/stretchr/testify/assert"
)

// signPayment reproduces the provider's callback signature: a hex HMAC-SHA256
// over "<provider order id>|<provider payment id>".
func signPayment(providerOrderID, providerPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func seedPendingOrder(t *testing.T, orderRepo *repositories.MockOrderRepository) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            "order-1",
		UserID:        "user-1",
		TotalAmount:   100.0,
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderProcessing,
	}
	assert.NoError(t, orderRepo.Create(context.Background(), order))
	return order
}

func TestPaymentService_UnconfiguredGateway(t *testing.T) {
	ctx := context.Background()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewPaymentService("", "", orderRepo, nil)

	_, err := svc.CreateIntent(ctx, 100.0)
	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)

	err = svc.VerifyAndSettle(ctx, "order-1", "rzp-order-1", "rzp-pay-1", "sig", "user-1")
	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}

func TestPaymentService_RejectsTamperedSignature(t *testing.T) {
	ctx := context.Background()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewPaymentService("rzp_test_key", "rzp_test_secret", orderRepo, nil)

	order := seedPendingOrder(t, orderRepo)

	err := svc.VerifyAndSettle(ctx, order.ID, "rzp-order-1", "rzp-pay-1", "deadbeef", order.UserID)
	assert.ErrorIs(t, err, models.ErrSignatureInvalid)

	// A rejected signature never moves the order off pending.
	stored, err := orderRepo.GetByUser(ctx, order.UserID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored[0].PaymentStatus)
	assert.Empty(t, stored[0].PaymentID)
}

func TestPaymentService_SettlesOnValidSignature(t *testing.T) {
	ctx := context.Background()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewPaymentService("rzp_test_key", "rzp_test_secret", orderRepo, nil)

	order := seedPendingOrder(t, orderRepo)

	sig := signPayment("rzp-order-1", "rzp-pay-1", "rzp_test_secret")
	err := svc.VerifyAndSettle(ctx, order.ID, "rzp-order-1", "rzp-pay-1", sig, order.UserID)
	assert.NoError(t, err)

	stored, err := orderRepo.GetByUser(ctx, order.UserID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, stored[0].PaymentStatus)
	assert.Equal(t, "rzp-pay-1", stored[0].PaymentID)
}

func TestPaymentService_SettleRequiresMatchingUser(t *testing.T) {
	ctx := context.Background()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewPaymentService("rzp_test_key", "rzp_test_secret", orderRepo, nil)

	order := seedPendingOrder(t, orderRepo)

	// A valid signature presented by a different user settles nothing.
	sig := signPayment("rzp-order-1", "rzp-pay-1", "rzp_test_secret")
	err := svc.VerifyAndSettle(ctx, order.ID, "rzp-order-1", "rzp-pay-1", sig, "user-other")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	stored, err := orderRepo.GetByUser(ctx, order.UserID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored[0].PaymentStatus)
}
