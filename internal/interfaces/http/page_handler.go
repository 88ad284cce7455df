package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/i18n"
)

var superAdminOnly = []entity.Role{entity.RoleSuperAdmin}

// PageHandler devuelve descriptores de página; el render lo hace el front.
type PageHandler struct{}

// NewPageHandler construye el handler de páginas.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Page descriptor genérico: ruta, rol de la sesión e idioma/dirección.
func (h *PageHandler) Page(c *fiber.Ctx) error {
	lang := GetLang(c)
	return c.JSON(dto.PageResponse{
		Page: c.Path(),
		Role: roleString(GetRole(c)),
		Lang: lang.String(),
		Dir:  i18n.Dir(lang),
	})
}

// AuthError página de error de login: el código del query se devuelve tal cual junto al
// aviso localizado genérico.
func (h *PageHandler) AuthError(c *fiber.Ctx) error {
	lang := GetLang(c)
	return c.JSON(dto.AuthErrorResponse{
		Status:  "auth_error",
		Error:   c.Query("error", "AuthenticationFailed"),
		Message: i18n.T(lang, i18n.KeyOAuthFailed),
		Lang:    lang.String(),
		Dir:     i18n.Dir(lang),
	})
}

// Permissions página de gestión de permisos, envuelta con el guard de rol.
func (h *PageHandler) Permissions() fiber.Handler {
	return WithRoles(superAdminOnly, h.Page)
}

// RolesSection sección de asignación de roles dentro de ajustes: el personal que no es
// super_admin ve el aviso localizado en lugar del contenido.
func (h *PageHandler) RolesSection(c *fiber.Ctx) error {
	return RoleGate(c, superAdminOnly, h.Page, nil)
}
