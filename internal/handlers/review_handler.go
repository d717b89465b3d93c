package handlers

import (
	"sparemart/internal/middleware"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the review listing.
func (h *ReviewHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/reviews/:productId", h.HandleListByProduct)
}

// RegisterProtectedRoutes registers the authenticated review write.
func (h *ReviewHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/reviews", h.HandleCreate)
}

// ReviewRequest represents the request body for a new review.
type ReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// HandleCreate adds a review and returns the stored record.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := middleware.UserFromCtx(c)
	review, err := h.service.Add(c.Context(), req.ProductID, user.ID, user.Name, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListByProduct returns all reviews for a product.
func (h *ReviewHandler) HandleListByProduct(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}
