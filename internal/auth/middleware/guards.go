package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

// RequireRole gates a route on the identity's subscription tier.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
		}

		tier := identity.Role
		if tier == "" {
			tier = constant.PlanFree
		}

		if !allowed[tier] {
			return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		return c.Next()
	}
}

// RequireAdmin gates a route on the admin role claim carried in the verified
// token. The claim is only as fresh as the last token issuance; revoking
// admin rights requires the outstanding tokens to expire.
func RequireAdmin(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
		}

		if identity.TokenRole != constant.RoleAdmin {
			log.WithFields(logrus.Fields{
				"user_id": identity.UserID,
				"role":    identity.TokenRole,
				"path":    c.Path(),
			}).Warn("unauthorized admin access attempt")
			return response.ErrorWithMessage(c, fiber.StatusForbidden,
				"Admin access required",
				"You do not have permission to access this resource")
		}

		return c.Next()
	}
}
