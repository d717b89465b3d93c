package handlers

import (
	"sparemart/internal/middleware"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts and wishlists. All routes
// require authentication.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterProtectedRoutes registers the cart and wishlist routes.
func (h *CartHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/cart", h.HandleGetCart)
	r.Post("/cart/add", h.HandleAddToCart)
	r.Post("/cart/remove", h.HandleRemoveFromCart)
	r.Post("/cart/clear", h.HandleClearCart)

	r.Get("/wishlist", h.HandleGetWishlist)
	r.Post("/wishlist/add", h.HandleAddToWishlist)
	r.Post("/wishlist/remove", h.HandleRemoveFromWishlist)
}

// HandleGetCart returns the caller's cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	cart, err := h.service.GetOrCreateCart(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// CartItemRequest represents the request body for cart add operations. A
// zero quantity defaults to one.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// HandleAddToCart merges an item into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	if err := h.service.AddItem(c.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item added to cart"})
}

// ProductRefRequest carries a bare product reference.
type ProductRefRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleRemoveFromCart drops an item from the caller's cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	var req ProductRefRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	if err := h.service.RemoveItem(c.Context(), user.ID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if err := h.service.ClearCart(c.Context(), user.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// HandleGetWishlist returns the caller's wishlist, creating it on first
// access.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	wishlist, err := h.service.GetOrCreateWishlist(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wishlist)
}

// HandleAddToWishlist saves a product for later.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req ProductRefRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	if err := h.service.AddToWishlist(c.Context(), user.ID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item added to wishlist"})
}

// HandleRemoveFromWishlist drops a product from the wishlist.
func (h *CartHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	var req ProductRefRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	if err := h.service.RemoveFromWishlist(c.Context(), user.ID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from wishlist"})
}
