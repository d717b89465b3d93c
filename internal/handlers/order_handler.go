package handlers

import (
	"sparemart/internal/middleware"
	"sparemart/internal/models"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for the order pipeline and the admin
// dashboard.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterProtectedRoutes registers the customer order routes.
func (h *OrderHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/orders", h.HandleListMine)
	r.Post("/orders/create", h.HandleCreate)
}

// RegisterAdminRoutes registers the admin order surface and dashboard.
func (h *OrderHandler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/admin/orders", h.HandleListAll)
	r.Put("/admin/orders/:id/status", h.HandleUpdateStatus)
	r.Get("/admin/stats", h.HandleStats)
}

// CreateOrderRequest represents the request body for checkout.
type CreateOrderRequest struct {
	Items           []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"total_amount" validate:"required,gt=0"`
	ShippingAddress models.Address     `json:"shipping_address" validate:"required"`
}

// HandleCreate freezes the caller's checkout into an order.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	order, err := h.service.Create(c.Context(), user.ID, req.Items, req.TotalAmount, req.ShippingAddress)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListMine returns the caller's orders, newest first.
func (h *OrderHandler) HandleListMine(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	orders, err := h.service.ListByUser(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleListAll returns every order for the admin panel.
func (h *OrderHandler) HandleListAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// UpdateStatusRequest represents the request body for a fulfillment update.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateStatus sets an order's fulfillment status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

// HandleStats serves the admin dashboard counters.
func (h *OrderHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
