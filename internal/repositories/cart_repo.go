package repositories

import (
	"context"

	"sparemart/internal/models"
)

// CartRepository defines the interface for cart data access. Mutations must
// be atomic at the cart-document level: two concurrent AddItem calls for the
// same user must not lose an update, and two concurrent GetOrCreate calls
// must yield a single cart.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// WishlistRepository defines the interface for wishlist data access, with
// the same upsert-on-read and per-document atomicity expectations.
type WishlistRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}
