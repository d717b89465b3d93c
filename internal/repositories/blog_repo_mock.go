package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
)

// MockBlogRepository is an in-memory implementation of BlogRepository.
type MockBlogRepository struct {
	posts map[string]models.BlogPost
	mu    sync.RWMutex
}

// NewMockBlogRepository creates a new instance of MockBlogRepository.
func NewMockBlogRepository() *MockBlogRepository {
	return &MockBlogRepository{posts: make(map[string]models.BlogPost)}
}

// List returns blog posts, newest first.
func (r *MockBlogRepository) List(ctx context.Context, limit int) ([]models.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = defaultBlogLimit
	}
	list := make([]models.BlogPost, 0, len(r.posts))
	for _, p := range r.posts {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// GetByID returns a single blog post.
func (r *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, models.ErrBlogNotFound
	}
	return &post, nil
}

// Create adds a new blog post.
func (r *MockBlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	r.posts[post.ID] = *post
	return nil
}
