package handlers

import (
	"sparemart/internal/middleware"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for the payment gateway flow.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterProtectedRoutes registers the payment routes. Both require
// authentication.
func (h *PaymentHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/payment/create-order", h.HandleCreateOrder)
	r.Post("/payment/verify", h.HandleVerify)
}

// CreatePaymentRequest represents the request body for a provider order.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// HandleCreateOrder creates a payment order at the provider and relays its
// payload to the client.
func (h *PaymentHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	providerOrder, err := h.service.CreateIntent(c.Context(), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(providerOrder)
}

// VerifyPaymentRequest represents the signed callback relayed by the client
// after checkout completes at the provider.
type VerifyPaymentRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// HandleVerify validates the provider signature and settles the order.
func (h *PaymentHandler) HandleVerify(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	err := h.service.VerifyAndSettle(c.Context(), req.OrderID, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment verified", "status": "success"})
}
