package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/i18n"
)

// RequireRole autoriza endpoints de API a partir del rol que dejó EdgeGate.
// A diferencia de las páginas no redirige: responde 401 sin sesión verificada y
// 403 si el rol no está en allowed.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_SESSION",
				Message: i18n.T(GetLang(c), i18n.KeyNoSession),
			})
		}
		for _, r := range allowed {
			if *role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: access.UnauthorizedMessage(role, GetLang(c)),
		})
	}
}
