// Package middleware provides HTTP middleware components for the
// application: JWT authentication and role-based guards for the fiber
// framework.
package middleware

import (
	"log"
	"strings"

	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
type AuthMiddleware struct {
	users repositories.UserRepository
}

func NewAuthMiddleware(users repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Handler validates the bearer token, checks the token version against
// the user record and stores the claims and the current user in the
// request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}

	user, err := m.users.GetByID(claims.UserID)
	if err != nil {
		log.Printf("User %d from token not found", claims.UserID)
		return utils.Unauthorized(c, "invalid token")
	}

	if claims.TokenVersion != user.TokenVersion {
		return utils.Unauthorized(c, "session expired")
	}
	if !user.IsActive {
		return utils.Forbidden(c, "account is deactivated")
	}

	c.Locals("claims", claims)
	c.Locals("user", user)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// RequireRoles allows only requests whose authenticated user holds one of
// the given roles.
func RequireRoles(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return utils.Unauthorized(c, "authentication required")
		}
		if !allowed[user.Role] {
			return utils.Forbidden(c, "insufficient role")
		}
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user stored by Handler.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}
