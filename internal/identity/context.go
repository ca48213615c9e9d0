// Package identity extracts the authenticated user from request context.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const viewerKey = "viewer"

// CurrentUserID extracts the user UUID from JWT claims on a protected route.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetViewer stores the optionally-resolved viewer for this request.
func SetViewer(c *fiber.Ctx, id uuid.UUID) {
	c.Locals(viewerKey, id)
}

// Viewer returns the viewer resolved by the optional-auth middleware, or
// nil when the request is anonymous.
func Viewer(c *fiber.Ctx) *uuid.UUID {
	if id, ok := c.Locals(viewerKey).(uuid.UUID); ok {
		return &id
	}
	return nil
}
