package middleware

import "github.com/gofiber/fiber/v2"

// identityKey is the fiber.Ctx Locals key the authenticator stores the
// resolved identity under.
const identityKey = "identity"

// Identity is the request-scoped result of authentication. Role carries the
// subscription tier used by tier gates; TokenRole carries the admin/user
// claim exactly as it appeared in the verified token. Admin checks trust
// TokenRole rather than re-reading the store, so a demotion only takes
// effect once outstanding tokens expire.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	TokenRole string
}

// GetIdentity returns the identity attached by RequireAuth, or nil when the
// request is anonymous.
func GetIdentity(c *fiber.Ctx) *Identity {
	if id, ok := c.Locals(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

// SetIdentity attaches an identity to the request. The authenticator calls
// it after verification; tests call it to stand in for the full pipeline.
func SetIdentity(c *fiber.Ctx, id *Identity) {
	c.Locals(identityKey, id)
}
