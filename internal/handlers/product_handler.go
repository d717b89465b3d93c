package handlers

import (
	"strconv"

	"sparemart/internal/models"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the catalog reads.
func (h *ProductHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/products", h.HandleList)
	r.Get("/products/:id", h.HandleGet)
	r.Get("/categories", h.HandleListCategories)
	r.Get("/brands", h.HandleListBrands)
}

// RegisterAdminRoutes registers the catalog mutations.
func (h *ProductHandler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/products", h.HandleCreate)
	r.Put("/products/:id", h.HandleUpdate)
	r.Delete("/products/:id", h.HandleDelete)
}

// HandleList retrieves products filtered by the query parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	products, err := h.service.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGet retrieves a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// ProductRequest represents the request body for product create/update.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"max=2000"`
	Category      string   `json:"category" validate:"required"`
	Brand         string   `json:"brand" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`
	Image         string   `json:"image"`
	Stock         int      `json:"stock" validate:"gte=0"`
}

// HandleCreate adds a product to the catalog.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Stock:         req.Stock,
	}
	if err := h.service.Create(c.Context(), product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate modifies an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product := &models.Product{
		ID:            c.Params("id"),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Stock:         req.Stock,
	}
	if err := h.service.Update(c.Context(), product); err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.Get(c.Context(), product.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDelete removes a product from the catalog.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleListCategories returns categories, optionally filtered by type.
func (h *ProductHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context(), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleListBrands returns brands, optionally filtered by type.
func (h *ProductHandler) HandleListBrands(c *fiber.Ctx) error {
	brands, err := h.service.ListBrands(c.Context(), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brands)
}
