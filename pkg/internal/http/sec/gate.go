package sec

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/security"
)

const identityCtxKey = "identity"

// CookieName is the fallback transport for bearer tokens when no
// Authorization header is present.
const CookieName = "authToken"

// Gate is the request-side of the credential service: it turns a bearer
// token into an identity in the request context, or rejects the request
// before the wrapped handler runs.
type Gate struct {
	Tokens *security.TokenPolicy
}

func NewGate(tokens *security.TokenPolicy) *Gate {
	return &Gate{Tokens: tokens}
}

func (g *Gate) extractToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies(CookieName)
}

// Required rejects unauthenticated requests. Rejections happen before any
// handler work, so they are side-effect-free.
func (g *Gate) Required(c *fiber.Ctx) error {
	token := g.extractToken(c)
	if len(token) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	identity, ok := g.Tokens.Verify(token)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals(identityCtxKey, identity)
	return c.Next()
}

// Optional attaches the identity when a valid token is present and lets the
// request through either way.
func (g *Gate) Optional(c *fiber.Ctx) error {
	if token := g.extractToken(c); len(token) > 0 {
		if identity, ok := g.Tokens.Verify(token); ok {
			c.Locals(identityCtxKey, identity)
		}
	}
	return c.Next()
}

// Authenticated returns the identity the gate attached to this request.
func Authenticated(c *fiber.Ctx) (security.Identity, bool) {
	identity, ok := c.Locals(identityCtxKey).(security.Identity)
	return identity, ok
}

func EnsureAuthenticated(c *fiber.Ctx) (security.Identity, error) {
	identity, ok := Authenticated(c)
	if !ok {
		return identity, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return identity, nil
}
