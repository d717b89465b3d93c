package services

import (
	"context"
	"fmt"

	"sparemart/internal/models"
	"sparemart/internal/repositories"
)

// CartService handles business logic for carts and wishlists. All mutations
// are delegated to atomic store updates so concurrent requests on the same
// cart never lose an update.
type CartService struct {
	cartRepo     repositories.CartRepository
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetOrCreateCart returns the user's cart, lazily creating an empty one.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.cartRepo.GetOrCreate(ctx, userID)
}

// AddItem puts quantity units of a product into the cart. The product must
// exist in the catalog; an existing cart line has its quantity incremented
// rather than replaced.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	if err := s.cartRepo.AddItem(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

// RemoveItem drops a product from the cart. Removing a product that is not
// in the cart succeeds; only a user with no cart record at all gets
// models.ErrCartNotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.cartRepo.RemoveItem(ctx, userID, productID)
}

// ClearCart empties the cart, creating it if the user has none.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}

// GetOrCreateWishlist returns the user's wishlist, lazily creating it.
func (s *CartService) GetOrCreateWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	return s.wishlistRepo.GetOrCreate(ctx, userID)
}

// AddToWishlist saves a product for later. Duplicates are ignored.
func (s *CartService) AddToWishlist(ctx context.Context, userID, productID string) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(ctx, userID, productID)
}

// RemoveFromWishlist drops a product from the wishlist.
func (s *CartService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return s.wishlistRepo.Remove(ctx, userID, productID)
}
