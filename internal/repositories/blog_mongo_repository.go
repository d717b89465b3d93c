package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultBlogLimit = 10

// MongoBlogRepository is a MongoDB implementation of BlogRepository.
type MongoBlogRepository struct {
	coll *mongo.Collection
}

// NewMongoBlogRepository creates a new instance of MongoBlogRepository.
func NewMongoBlogRepository(store *Store) *MongoBlogRepository {
	return &MongoBlogRepository{coll: store.Collection("blogs")}
}

// List returns blog posts, newest first.
func (r *MongoBlogRepository) List(ctx context.Context, limit int) ([]models.BlogPost, error) {
	if limit <= 0 {
		limit = defaultBlogLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.BlogPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return posts, nil
}

// GetByID returns a single blog post.
func (r *MongoBlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog post %s: %w", id, err)
	}
	return &post, nil
}

// Create inserts a new blog post.
func (r *MongoBlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}
