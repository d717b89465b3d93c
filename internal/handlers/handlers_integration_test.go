package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sparemart/internal/handlers"
	"sparemart/internal/middleware"
	"sparemart/internal/models"
	"sparemart/internal/repositories"
	"sparemart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

type testEnv struct {
	app         *fiber.App
	userRepo    *repositories.MockUserRepository
	productRepo *repositories.MockProductRepository
	cartRepo    *repositories.MockCartRepository
	orderRepo   *repositories.MockOrderRepository
	authService *services.AuthService
}

// setupApp wires the full route tree over in-memory repositories, matching
// the production grouping: public, authenticated and admin.
func setupApp() *testEnv {
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	catalogRepo := repositories.NewMockCatalogRepository()
	cartRepo := repositories.NewMockCartRepository()
	wishlistRepo := repositories.NewMockWishlistRepository()
	orderRepo := repositories.NewMockOrderRepository()
	reviewRepo := repositories.NewMockReviewRepository()
	blogRepo := repositories.NewMockBlogRepository()

	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	productService := services.NewProductService(productRepo, catalogRepo)
	cartService := services.NewCartService(cartRepo, wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, userRepo, productRepo, nil)
	paymentService := services.NewPaymentService("", "", orderRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	blogService := services.NewBlogService(blogRepo)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	blogHandler := handlers.NewBlogHandler(blogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	api := app.Group("/api", middleware.OptionalAuth(authService))
	authHandler.RegisterPublicRoutes(api)
	productHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterPublicRoutes(api)
	blogHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	handlers.NewCartHandler(cartService).RegisterProtectedRoutes(protected)
	orderHandler.RegisterProtectedRoutes(protected)
	handlers.NewPaymentHandler(paymentService).RegisterProtectedRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	admin := protected.Group("", middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	blogHandler.RegisterAdminRoutes(admin)

	return &testEnv{
		app:         app,
		userRepo:    userRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		authService: authService,
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerUser registers through the API and returns the token.
func registerUser(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	token, _ := body["access_token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// registerAdmin seeds an admin directly (there is no API path that grants the
// flag) and logs in through the API.
func registerAdmin(t *testing.T, env *testEnv) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, env.userRepo.Create(context.Background(), &models.User{
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}))

	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "adminpass123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	token, _ := body["access_token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// TestRouteTierIsolation pins the access level of each route tier: the auth
// gates must never leak onto the public routes, and the admin gate must never
// leak onto plain authenticated routes.
func TestRouteTierIsolation(t *testing.T) {
	env := setupApp()
	ctx := context.Background()

	assert.NoError(t, env.productRepo.Create(ctx, &models.Product{
		ID: "prod-1", Name: "Brake Pad Set", Category: "brakes", Brand: "Bosch", Price: 45.0,
	}))

	// Public routes answer anonymous callers.
	resp := doJSON(t, env.app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/blogs", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/reviews/prod-1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Registration itself is public and must succeed without a token.
	token := registerUser(t, env, "tiers@example.com")

	// Authenticated, non-admin callers reach the protected tier...
	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// ...but not the admin tier.
	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Anonymous callers are stopped at the protected tier.
	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthFlow(t *testing.T) {
	env := setupApp()

	token := registerUser(t, env, "flow@example.com")

	// Duplicate registration conflicts.
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
		"name":     "Someone Else",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Wrong password is rejected without revealing which part was wrong.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "flow@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The token resolves to the registered user.
	resp = doJSON(t, env.app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "flow@example.com", me.Email)

	// Protected routes reject anonymous callers.
	resp = doJSON(t, env.app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicCatalogAndValidation(t *testing.T) {
	env := setupApp()
	ctx := context.Background()

	assert.NoError(t, env.productRepo.Create(ctx, &models.Product{
		ID: "prod-1", Name: "Brake Pad Set", Category: "brakes", Brand: "Bosch", Price: 45.0, Stock: 10,
	}))

	// Catalog reads need no token.
	resp := doJSON(t, env.app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/prod-1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Invalid registration body surfaces a field error map.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "x",
		"name":     "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Contains(t, body, "errors")
}

func TestCartAndCheckoutFlow(t *testing.T) {
	env := setupApp()
	ctx := context.Background()
	token := registerUser(t, env, "cart@example.com")

	assert.NoError(t, env.productRepo.Create(ctx, &models.Product{
		ID: "prod-1", Name: "Brake Pad Set", Category: "brakes", Brand: "Bosch", Price: 45.0, Stock: 10,
	}))

	// Two adds of the same product merge into one line.
	resp := doJSON(t, env.app, http.MethodPost, "/api/cart/add", token, map[string]interface{}{
		"product_id": "prod-1", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodPost, "/api/cart/add", token, map[string]interface{}{
		"product_id": "prod-1", "quantity": 3,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cart models.Cart
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Unknown products cannot enter the cart.
	resp = doJSON(t, env.app, http.MethodPost, "/api/cart/add", token, map[string]interface{}{
		"product_id": "no-such-id", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Checkout freezes the order and empties the cart.
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders/create", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "product_name": "Brake Pad Set", "quantity": 5, "price": 45.0},
		},
		"total_amount": 225.0,
		"shipping_address": map[string]string{
			"name": "Test User", "phone": "555-0100", "street": "1 Main St",
			"city": "Pune", "state": "MH", "pincode": "411001",
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.OrderProcessing, order.OrderStatus)

	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)

	resp = doJSON(t, env.app, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestAdminSurface(t *testing.T) {
	env := setupApp()
	userToken := registerUser(t, env, "plain@example.com")
	adminToken := registerAdmin(t, env)

	// Non-admins are turned away.
	resp := doJSON(t, env.app, http.MethodGet, "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/products", userToken, map[string]interface{}{
		"name": "Sneaky Product", "category": "brakes", "brand": "Bosch", "price": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admins can manage the catalog.
	resp = doJSON(t, env.app, http.MethodPost, "/api/products", adminToken, map[string]interface{}{
		"name": "Brake Disc", "category": "brakes", "brand": "Brembo", "price": 80.0, "stock": 8,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.AdminStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalUsers)

	// Fulfillment updates accept only known statuses.
	ctx := context.Background()
	assert.NoError(t, env.orderRepo.Create(ctx, &models.Order{
		ID: "order-1", UserID: "someone", PaymentStatus: models.PaymentPending, OrderStatus: models.OrderProcessing,
	}))
	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/orders/order-1/status", adminToken, map[string]string{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/orders/order-1/status", adminToken, map[string]string{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Order
	decodeBody(t, resp, &all)
	assert.Len(t, all, 1)
	assert.Equal(t, models.OrderShipped, all[0].OrderStatus)
}

func TestReviewEndpoints(t *testing.T) {
	env := setupApp()
	ctx := context.Background()
	token := registerUser(t, env, "reviewer@example.com")

	assert.NoError(t, env.productRepo.Create(ctx, &models.Product{
		ID: "prod-1", Name: "Brake Pad Set", Category: "brakes", Brand: "Bosch", Price: 45.0,
	}))

	resp := doJSON(t, env.app, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"product_id": "prod-1", "rating": 5, "comment": "great fit",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Ratings outside 1..5 are rejected.
	resp = doJSON(t, env.app, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"product_id": "prod-1", "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Anyone can read reviews.
	resp = doJSON(t, env.app, http.MethodGet, "/api/reviews/prod-1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reviews []models.Review
	decodeBody(t, resp, &reviews)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	// The product's derived rating moved with the insert.
	product, err := env.productRepo.GetByID(ctx, "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, product.Rating)
	assert.Equal(t, 1, product.ReviewsCount)
}

func TestPaymentWithoutGateway(t *testing.T) {
	env := setupApp()
	token := registerUser(t, env, "payer@example.com")

	resp := doJSON(t, env.app, http.MethodPost, "/api/payment/create-order", token, map[string]interface{}{
		"amount": 225.0,
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestBlogEndpoints(t *testing.T) {
	env := setupApp()
	adminToken := registerAdmin(t, env)

	resp := doJSON(t, env.app, http.MethodPost, "/api/blogs", adminToken, map[string]string{
		"title":   "Choosing the right brake pads",
		"content": "Long-form content here.",
		"excerpt": "A buyer's guide.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.BlogPost
	decodeBody(t, resp, &post)
	assert.NotEmpty(t, post.ID)
	assert.NotEmpty(t, post.Author) // defaulted when omitted

	resp = doJSON(t, env.app, http.MethodGet, "/api/blogs", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []models.BlogPost
	decodeBody(t, resp, &posts)
	assert.Len(t, posts, 1)

	resp = doJSON(t, env.app, http.MethodGet, "/api/blogs/"+post.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/blogs/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
