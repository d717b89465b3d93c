package services

import (
	"context"
	"encoding/json"
	"fmt"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/util"
	"sparemart/pkg/rabbitmq"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

// PaymentService adapts the Razorpay gateway: it creates provider-side
// payment orders and verifies signed payment callbacks. Without configured
// credentials every operation fails with models.ErrGatewayUnavailable.
type PaymentService struct {
	client    *razorpay.Client
	keySecret string
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client
	logger    *zap.Logger
}

// NewPaymentService creates a new PaymentService. Empty credentials leave
// the gateway unconfigured rather than failing startup.
func NewPaymentService(keyID, keySecret string, orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *PaymentService {
	var client *razorpay.Client
	if keyID != "" && keySecret != "" {
		client = razorpay.NewClient(keyID, keySecret)
	}
	return &PaymentService{
		client:    client,
		keySecret: keySecret,
		orderRepo: orderRepo,
		mqClient:  mqClient,
		logger:    util.GetLogger(),
	}
}

// CreateIntent creates a payment order at the provider for the given amount
// and returns the provider's payload. The amount is converted to paise with
// automatic capture enabled.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (map[string]interface{}, error) {
	if s.client == nil {
		return nil, models.ErrGatewayUnavailable
	}

	data := map[string]interface{}{
		"amount":          int64(amount * 100),
		"currency":        "INR",
		"payment_capture": 1,
	}
	providerOrder, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.logger.Error("provider order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrGatewayError, err)
	}
	return providerOrder, nil
}

// VerifyAndSettle checks the provider signature binding the provider order
// and payment IDs, then marks the user's order as paid. Every verification
// failure collapses into models.ErrSignatureInvalid; a tampered signature
// never moves payment_status away from pending.
func (s *PaymentService) VerifyAndSettle(ctx context.Context, orderID, providerOrderID, providerPaymentID, signature, userID string) error {
	if s.keySecret == "" {
		return models.ErrGatewayUnavailable
	}

	params := map[string]interface{}{
		"razorpay_order_id":   providerOrderID,
		"razorpay_payment_id": providerPaymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, s.keySecret) {
		util.PaymentFailedTotal.WithLabelValues("signature").Inc()
		s.logger.Warn("payment signature rejected",
			zap.String("order_id", orderID),
			zap.String("user_id", userID))
		return models.ErrSignatureInvalid
	}

	if err := s.orderRepo.SetPaymentResult(ctx, orderID, userID, providerPaymentID, models.PaymentSuccess); err != nil {
		return err
	}
	util.PaymentSuccessTotal.Inc()

	s.publish("payment.captured", map[string]interface{}{
		"order_id":   orderID,
		"payment_id": providerPaymentID,
		"user_id":    userID,
	})

	s.logger.Info("payment settled",
		zap.String("order_id", orderID),
		zap.String("payment_id", providerPaymentID))
	return nil
}

func (s *PaymentService) publish(eventType string, payload map[string]interface{}) {
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
