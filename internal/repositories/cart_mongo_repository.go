package repositories

import (
	"context"
	"fmt"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(store *Store) *MongoCartRepository {
	return &MongoCartRepository{coll: store.Collection("carts")}
}

// GetOrCreate returns the user's cart, creating an empty one atomically on
// first access. The upsert plus the unique index on user_id guarantee a
// single cart per user even under concurrent first accesses.
func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"id":         uuid.New().String(),
		"items":      []models.CartItem{},
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&cart); err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return &cart, nil
}

// AddItem merges a line into the cart. An existing line gets its quantity
// incremented in place; otherwise the item is appended, upserting the cart
// document if the user has none yet. The append filter excludes carts that
// already hold the product, so two concurrent adds of the same product can
// never create two lines: the loser of the append race falls back to the
// increment.
func (r *MongoCartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	now := time.Now().UTC()

	inc := bson.M{
		"$inc": bson.M{"items.$.quantity": quantity},
		"$set": bson.M{"updated_at": now},
	}
	lineFilter := bson.M{"user_id": userID, "items.product_id": productID}

	res, err := r.coll.UpdateOne(ctx, lineFilter, inc)
	if err != nil {
		return fmt.Errorf("failed to increment cart item: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": productID}},
		bson.M{
			"$push":        bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"id": uuid.New().String()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		// A concurrent upsert of the cart document trips the unique
		// user_id index; the line now exists, merge into it below.
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to append cart item: %w", err)
		}
	} else if res.MatchedCount > 0 || res.UpsertedCount > 0 {
		return nil
	}

	// The append matched nothing: a concurrent writer either inserted this
	// line (merge into it) or created the cart just ahead of us (append to
	// it; no upsert needed anymore).
	res, err = r.coll.UpdateOne(ctx, lineFilter, inc)
	if err != nil {
		return fmt.Errorf("failed to increment cart item: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": productID}},
		bson.M{
			"$push": bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}},
			"$set":  bson.M{"updated_at": now},
		})
	if err != nil {
		return fmt.Errorf("failed to append cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to merge cart item %s for user %s", productID, userID)
	}
	return nil
}

// RemoveItem pulls a line from the cart. Removing an absent product is a
// no-op success; only a missing cart document is an error.
func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrCartNotFound
	}
	return nil
}

// Clear empties the item list, upserting the cart if none exists.
func (r *MongoCartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"items": []models.CartItem{}, "updated_at": time.Now().UTC()},
			"$setOnInsert": bson.M{"id": uuid.New().String()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// MongoWishlistRepository is a MongoDB implementation of WishlistRepository.
type MongoWishlistRepository struct {
	coll *mongo.Collection
}

// NewMongoWishlistRepository creates a new instance of MongoWishlistRepository.
func NewMongoWishlistRepository(store *Store) *MongoWishlistRepository {
	return &MongoWishlistRepository{coll: store.Collection("wishlists")}
}

// GetOrCreate returns the user's wishlist, creating an empty one atomically
// on first access.
func (r *MongoWishlistRepository) GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"id":         uuid.New().String(),
		"items":      []string{},
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var wishlist models.Wishlist
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&wishlist); err != nil {
		return nil, fmt.Errorf("failed to get or create wishlist: %w", err)
	}
	return &wishlist, nil
}

// Add inserts a product ID into the set. $addToSet keeps the list free of
// duplicates without a read-modify-write round trip.
func (r *MongoWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet":    bson.M{"items": productID},
			"$set":         bson.M{"updated_at": time.Now().UTC()},
			"$setOnInsert": bson.M{"id": uuid.New().String()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// Remove pulls a product ID from the set. Removing an absent product is a
// no-op success.
func (r *MongoWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": productID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrWishlistNotFound
	}
	return nil
}
