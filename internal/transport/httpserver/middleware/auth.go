package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
	"trip-feed-service/internal/infra/authclient"
	"trip-feed-service/internal/transport/httpserver/dto"
)

// identityKey is the fiber.Ctx local under which the resolved identity
// is stored.
const identityKey = "identity"

// IdentityResolver resolves bearer tokens to identities.
type IdentityResolver interface {
	Identify(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth returns a middleware that resolves the Authorization header via
// the authentication collaborator and stores the identity in the
// request locals. Requests without a valid token are rejected.
func Auth(resolver IdentityResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "missing bearer token",
				Code:  "UNAUTHORIZED",
			})
		}

		identity, err := resolver.Identify(c.Context(), token)
		if err != nil {
			if errors.Is(err, authclient.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "invalid token",
					Code:  "UNAUTHORIZED",
				})
			}
			logger.Error("identity resolution failed", zap.Error(err))

			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "authentication unavailable",
				Code:  "AUTH_UNAVAILABLE",
			})
		}

		c.Locals(identityKey, *identity)

		return c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. Used by public pages that only enrich
// their response for signed-in viewers.
func OptionalAuth(resolver IdentityResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		identity, err := resolver.Identify(c.Context(), token)
		if err != nil {
			if !errors.Is(err, authclient.ErrUnauthorized) {
				logger.Warn("identity resolution failed on public route", zap.Error(err))
			}

			return c.Next()
		}

		c.Locals(identityKey, *identity)

		return c.Next()
	}
}

// IdentityFrom returns the identity stored by Auth. The second return
// is false on anonymous requests.
func IdentityFrom(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)

	return identity, ok
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimPrefix(header, prefix)
}
