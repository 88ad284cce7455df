package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nombres de la cookie de sesión. En producción se usa el prefijo __Secure-,
// que el navegador solo acepta con Secure sobre HTTPS.
const (
	SessionCookieName       = "souq.session-token"
	SecureSessionCookieName = "__Secure-souq.session-token"
)

// SessionCookie emite y borra la cookie que transporta el token de sesión.
type SessionCookie struct {
	Name   string
	Secure bool
}

// NewSessionCookie elige nombre y atributos según el entorno.
func NewSessionCookie(production bool) SessionCookie {
	if production {
		return SessionCookie{Name: SecureSessionCookieName, Secure: true}
	}
	return SessionCookie{Name: SessionCookieName}
}

// Read devuelve el valor de la cookie ("" si no viene).
func (s SessionCookie) Read(c *fiber.Ctx) string {
	return c.Cookies(s.Name)
}

// Set guarda el token con la misma expiración que el JWT.
func (s SessionCookie) Set(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear invalida la cookie en el cliente. No existe lista de revocación en el servidor:
// un token copiado sigue siendo válido hasta su expiración.
func (s SessionCookie) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
