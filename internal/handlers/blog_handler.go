package handlers

import (
	"strconv"

	"sparemart/internal/models"
	"sparemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles HTTP requests for the storefront blog.
type BlogHandler struct {
	service  *services.BlogService
	validate *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the blog reads.
func (h *BlogHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/blogs", h.HandleList)
	r.Get("/blogs/:id", h.HandleGet)
}

// RegisterAdminRoutes registers the admin-only blog write.
func (h *BlogHandler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/blogs", h.HandleCreate)
}

// HandleList returns blog posts, newest first.
func (h *BlogHandler) HandleList(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	posts, err := h.service.List(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// HandleGet returns a single blog post.
func (h *BlogHandler) HandleGet(c *fiber.Ctx) error {
	post, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// BlogRequest represents the request body for publishing a post.
type BlogRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=200"`
	Content string `json:"content" validate:"required"`
	Excerpt string `json:"excerpt" validate:"max=500"`
	Image   string `json:"image"`
	Author  string `json:"author"`
}

// HandleCreate publishes a new blog post.
func (h *BlogHandler) HandleCreate(c *fiber.Ctx) error {
	var req BlogRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBodyError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	post := &models.BlogPost{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Image:   req.Image,
		Author:  req.Author,
	}
	if err := h.service.Create(c.Context(), post); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
