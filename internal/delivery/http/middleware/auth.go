package middleware

import (
	"context"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"
	"vidhub/pkg/helper"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const localUser = "user"

// UserResolver maps a verified identity onto a local user.
type UserResolver interface {
	ResolveUser(ctx context.Context, id *repositories.Identity) (*entities.User, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier repositories.IdentityVerifier, users UserResolver, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticate(c, verifier, users)
		if err != nil {
			return errors.HandleError(c, log, err)
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// every other request through anonymously.
func OptionalAuth(verifier repositories.IdentityVerifier, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, err := authenticate(c, verifier, users); err == nil {
			c.Locals(localUser, user)
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *fiber.Ctx) *entities.User {
	user, _ := c.Locals(localUser).(*entities.User)
	return user
}

// ViewerIdentity is the caller's user id, or a guest identity derived from
// the forwarded client address. It is empty when neither is known.
func ViewerIdentity(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil {
		return user.ID.String()
	}
	ip := helper.ClientIP(c.Get(fiber.HeaderXForwardedFor), c.IP())
	if ip == "" {
		return ""
	}
	return helper.GuestIdentity(ip)
}

func authenticate(c *fiber.Ctx, verifier repositories.IdentityVerifier, users UserResolver) (*entities.User, error) {
	token := helper.BearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return nil, errors.ErrUnauthorized(nil)
	}
	id, err := verifier.Verify(c.UserContext(), token)
	if err != nil {
		return nil, errors.ErrUnauthorized(err)
	}
	user, err := users.ResolveUser(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
