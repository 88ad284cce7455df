package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/Souq-api/internal/domain/entity"
)

// Locals keys que el gate deja en el contexto de Fiber.
const (
	LocalUserID     = "user_id"
	LocalRole       = "role"
	LocalHasSession = "has_session"
	LocalLang       = "lang"
)

// GetUserID devuelve el UserID del token verificado ("" si no hay).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token verificado; nil si no hay sesión o el token no verificó.
func GetRole(c *fiber.Ctx) *entity.Role {
	r, _ := c.Locals(LocalRole).(*entity.Role)
	return r
}

// HasSession informa si la petición trajo la cookie de sesión (verificada o no).
func HasSession(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalHasSession).(bool)
	return b
}

// GetLang devuelve el idioma resuelto para la petición (árabe si no se resolvió).
func GetLang(c *fiber.Ctx) language.Tag {
	if t, ok := c.Locals(LocalLang).(language.Tag); ok {
		return t
	}
	return language.Arabic
}

func roleString(r *entity.Role) string {
	if r == nil {
		return ""
	}
	return string(*r)
}
