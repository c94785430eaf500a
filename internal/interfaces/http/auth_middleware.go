package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
)

// LocalPrincipal clave en c.Locals del principal autenticado.
const LocalPrincipal = "principal"

// RequireAdmin exige rol ADMIN (o modo bypass) y deja el principal en c.Locals.
func RequireAdmin(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := guard.RequireAdmin(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (después de los middlewares de auth).
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}
