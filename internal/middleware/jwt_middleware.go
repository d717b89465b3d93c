package middleware

import (
	"errors"
	"strings"

	"sparemart/internal/models"
	"sparemart/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "current_user"

// AuthRequired verifies the bearer token and loads the calling user into the
// request context. A missing or invalid token yields 401; a token whose user
// no longer exists yields 404.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		userID, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		user, err := authService.GetUserByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load user",
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// AdminRequired gates a route to users carrying the admin flag. It must run
// after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// OptionalAuth loads the user when a valid bearer token is present and
// silently continues as anonymous on any verification failure.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		userID, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Next()
		}
		user, err := authService.GetUserByID(c.Context(), userID)
		if err != nil {
			return c.Next()
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user stored by the auth middleware,
// or nil for anonymous requests.
func UserFromCtx(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
