package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultListLimit = 50

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(store *Store) *MongoProductRepository {
	return &MongoProductRepository{coll: store.Collection("products")}
}

// List retrieves products matching the filter: exact match on category and
// brand, case-insensitive substring match on name, inclusive price range.
func (r *MongoProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Brand != "" {
		query["brand"] = filter.Brand
	}
	if filter.Search != "" {
		// The search term is a literal substring, never a pattern.
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the admin-editable fields of an existing product. The
// derived rating fields and the creation timestamp are left untouched.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	update := bson.M{"$set": bson.M{
		"name":           product.Name,
		"description":    product.Description,
		"category":       product.Category,
		"brand":          product.Brand,
		"price":          product.Price,
		"discount_price": product.DiscountPrice,
		"image":          product.Image,
		"stock":          product.Stock,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// Delete removes a product by its ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// SetRating overwrites the derived rating fields in a single update.
func (r *MongoProductRepository) SetRating(ctx context.Context, id string, rating float64, count int) error {
	update := bson.M{"$set": bson.M{"rating": rating, "reviews_count": count}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// Count returns the number of products in the catalog.
func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// MongoCatalogRepository serves categories and brands from their own
// collections.
type MongoCatalogRepository struct {
	categories *mongo.Collection
	brands     *mongo.Collection
}

// NewMongoCatalogRepository creates a new instance of MongoCatalogRepository.
func NewMongoCatalogRepository(store *Store) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		categories: store.Collection("categories"),
		brands:     store.Collection("brands"),
	}
}

// ListCategories returns categories, optionally filtered by type.
func (r *MongoCatalogRepository) ListCategories(ctx context.Context, typ string) ([]models.Category, error) {
	query := bson.M{}
	if typ != "" {
		query["type"] = typ
	}
	cur, err := r.categories.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// ListBrands returns brands, optionally filtered by type.
func (r *MongoCatalogRepository) ListBrands(ctx context.Context, typ string) ([]models.Brand, error) {
	query := bson.M{}
	if typ != "" {
		query["type"] = typ
	}
	cur, err := r.brands.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer cur.Close(ctx)

	brands := []models.Brand{}
	if err := cur.All(ctx, &brands); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}
	return brands, nil
}
