package api

import (
	"errors"
	"log"
	"strings"

	userdomain "github.com/example/task-management/domain/user"
	"github.com/example/task-management/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware rejects requests without a valid bearer token. A missing token
// is 401, a bad or expired one is 403.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Access token is required.",
			})
		}

		claims, err := authPort.VerifyToken(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
				return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
					Error:   "forbidden",
					Message: "Invalid or expired token.",
				})
			}
			log.Printf("[api] Token verification failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error:   "internal_error",
				Message: "Internal server error.",
			})
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}

// claimsFrom returns the claims stored by AuthMiddleware.
func claimsFrom(c *fiber.Ctx) (*userdomain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*userdomain.Claims)
	return claims, ok && claims != nil
}
