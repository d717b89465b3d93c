package repositories

import (
	"context"
	"sync"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID
	mu    sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]models.Cart)}
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access. The single mutex stands in for the store's upsert atomicity.
func (r *MockCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.getOrCreateLocked(userID)
	out := *cart
	out.Items = append([]models.CartItem(nil), cart.Items...)
	return &out, nil
}

// AddItem merges the quantity into an existing line or appends a new one.
func (r *MockCartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.getOrCreateLocked(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.UpdatedAt = time.Now().UTC()
			r.carts[userID] = *cart
			return nil
		}
	}
	cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	cart.UpdatedAt = time.Now().UTC()
	r.carts[userID] = *cart
	return nil
}

// RemoveItem drops the matching line if present; absent products are a
// no-op success.
func (r *MockCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return models.ErrCartNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now().UTC()
	r.carts[userID] = cart
	return nil
}

// Clear empties the item list, creating the cart if needed.
func (r *MockCartRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.getOrCreateLocked(userID)
	cart.Items = []models.CartItem{}
	cart.UpdatedAt = time.Now().UTC()
	r.carts[userID] = *cart
	return nil
}

func (r *MockCartRepository) getOrCreateLocked(userID string) *models.Cart {
	cart, ok := r.carts[userID]
	if !ok {
		cart = models.Cart{
			ID:        uuid.New().String(),
			UserID:    userID,
			Items:     []models.CartItem{},
			UpdatedAt: time.Now().UTC(),
		}
		r.carts[userID] = cart
	}
	return &cart
}

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	wishlists map[string]models.Wishlist // keyed by user ID
	mu        sync.Mutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{wishlists: make(map[string]models.Wishlist)}
}

// GetOrCreate returns the user's wishlist, creating an empty one on first
// access.
func (r *MockWishlistRepository) GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.getOrCreateLocked(userID)
	out := *w
	out.Items = append([]string(nil), w.Items...)
	return &out, nil
}

// Add inserts a product ID, ignoring duplicates.
func (r *MockWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.getOrCreateLocked(userID)
	for _, id := range w.Items {
		if id == productID {
			return nil
		}
	}
	w.Items = append(w.Items, productID)
	w.UpdatedAt = time.Now().UTC()
	r.wishlists[userID] = *w
	return nil
}

// Remove drops a product ID if present.
func (r *MockWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wishlists[userID]
	if !ok {
		return models.ErrWishlistNotFound
	}
	items := w.Items[:0]
	for _, id := range w.Items {
		if id != productID {
			items = append(items, id)
		}
	}
	w.Items = items
	w.UpdatedAt = time.Now().UTC()
	r.wishlists[userID] = w
	return nil
}

func (r *MockWishlistRepository) getOrCreateLocked(userID string) *models.Wishlist {
	w, ok := r.wishlists[userID]
	if !ok {
		w = models.Wishlist{
			ID:        uuid.New().String(),
			UserID:    userID,
			Items:     []string{},
			UpdatedAt: time.Now().UTC(),
		}
		r.wishlists[userID] = w
	}
	return &w
}
