package services

import (
	"context"
	"time"

	"sparemart/internal/models"
	"sparemart/internal/repositories"

	"github.com/google/uuid"
)

const defaultBlogAuthor = "Sparemart Team"

// BlogService handles business logic for the storefront blog.
type BlogService struct {
	blogRepo repositories.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogRepo repositories.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// List returns blog posts, newest first.
func (s *BlogService) List(ctx context.Context, limit int) ([]models.BlogPost, error) {
	return s.blogRepo.List(ctx, limit)
}

// Get returns a single blog post.
func (s *BlogService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// Create publishes a new post. An empty author falls back to the site
// default.
func (s *BlogService) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Author == "" {
		post.Author = defaultBlogAuthor
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	return s.blogRepo.Create(ctx, post)
}
