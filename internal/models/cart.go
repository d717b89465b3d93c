package models

import "time"

// CartItem is one line in a cart: a product reference and a quantity.
// Product IDs are unique within a cart; adding an existing product
// increments the quantity instead of appending a second line.
type CartItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Cart is the per-user working set of intended purchases. Exactly one cart
// exists per user; it is created lazily on first access and cleared, not
// deleted, after checkout.
type Cart struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Wishlist is the per-user saved-for-later product set, disjoint from the
// cart. Items holds product IDs without duplicates.
type Wishlist struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Items     []string  `bson:"items" json:"items"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
