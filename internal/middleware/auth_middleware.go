package middleware

import (
	"errors"
	"strings"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LocalsPrincipal is the c.Locals key holding the authenticated model.Principal.
const LocalsPrincipal = "principal"

// RequireAuth is middleware that validates the bearer token and sets the
// caller's principal in context
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			var e *apperr.Error
			if errors.As(err, &e) && e.Kind() == apperr.KindUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": e.Msg()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}

		c.Locals(LocalsPrincipal, user.Principal())
		return c.Next()
	}
}

// RequireRole lets the request through only when the principal's role is
// one of roles. It must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !model.RoleAllowed(p.Role, roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "Access denied. " + describeRoles(roles) + " role required.",
				"userRole": p.Role,
			})
		}
		return c.Next()
	}
}

// GetPrincipal returns the principal stored by RequireAuth.
func GetPrincipal(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(LocalsPrincipal).(model.Principal)
	return p, ok
}

func describeRoles(roles []string) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		if r != "" {
			r = strings.ToUpper(r[:1]) + r[1:]
		}
		names[i] = r
	}
	return strings.Join(names, " or ")
}
