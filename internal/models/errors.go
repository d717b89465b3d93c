package models

import "errors"

// Domain errors shared by repositories and services. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrWishlistNotFound   = errors.New("wishlist not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrBlogNotFound       = errors.New("blog post not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// Payment gateway boundary. All signature verification failures collapse
	// into ErrSignatureInvalid; the response does not distinguish forgery
	// from malformed input.
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
	ErrGatewayError       = errors.New("payment gateway error")
	ErrSignatureInvalid   = errors.New("payment verification failed")
)
