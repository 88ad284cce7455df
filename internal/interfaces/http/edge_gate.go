package http

import (
	"fmt"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/jwt"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// Rutas siempre públicas: páginas de auth, API del propio flujo de auth y utilidades.
var publicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/error",
	"/auth/logout",
	"/api/auth",
	"/health",
	"/docs",
}

// Assets estáticos e internos del front.
var assetPaths = []string{
	"/_next",
	"/static",
	"/assets",
	"/favicon.ico",
	"/robots.txt",
}

// EdgeGateConfig dependencias del gate.
type EdgeGateConfig struct {
	Secret string
	Issuer string
	Cookie SessionCookie
	Log    *logger.Logger
}

// EdgeGate intercepta cada petición antes de cualquier handler y decide admisión:
//
//  1. rutas públicas y assets pasan sin más;
//  2. la sola presencia de la cookie cuenta como sesión;
//  3. si hay cookie se verifica el token; cualquier fallo deja role = nil (no es error);
//  4. la ruta se clasifica en admin-only, customer-only o libre;
//  5. admin-only sin cookie → login con callbackUrl; con cookie pero sin permiso → "/";
//     customer-only solo exige cookie; el resto pasa.
//
// Un token roto con cookie presente no manda al login: se trata como rol nulo y
// termina en "/" para rutas admin-only, sin bucles de login.
func EdgeGate(cfg EdgeGateConfig) fiber.Handler {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("edge_gate")

	return func(c *fiber.Ctx) error {
		// p solo clasifica; el callbackUrl conserva las mayúsculas de la ruta pedida.
		p := normalizePath(c.Path())
		requested := cleanPath(c.Path())
		if isBypassed(p) {
			return c.Next()
		}

		token := cfg.Cookie.Read(c)
		hasSession := token != ""
		var role *entity.Role
		if hasSession {
			claims, err := verifySession(cfg.Secret, cfg.Issuer, token)
			if err != nil {
				log.Debug().Err(err).Str("path", p).Msg("token de sesión no verificado, rol nulo")
			} else {
				role = entity.ParseRole(claims.Role)
				c.Locals(LocalUserID, claims.UserID)
			}
		}
		c.Locals(LocalHasSession, hasSession)
		c.Locals(LocalRole, role)

		class := access.Classify(p)
		switch class {
		case access.PathAdminOnly:
			if !hasSession {
				return redirect(c, log, p, class, access.LoginRedirectURL(requested))
			}
			if !access.HasAccess(role, p) {
				return redirect(c, log, p, class, access.StorefrontRoot)
			}
		case access.PathCustomerOnly:
			// Solo presencia de sesión; cualquier rol autenticado (incluido personal) pasa.
			if !hasSession {
				return redirect(c, log, p, class, access.LoginRedirectURL(requested))
			}
		}
		return c.Next()
	}
}

func redirect(c *fiber.Ctx, log *logger.Logger, p string, class access.PathClass, target string) error {
	log.Debug().
		Str("path", p).
		Str("class", class.String()).
		Str("role", roleString(GetRole(c))).
		Str("redirect", target).
		Msg("petición redirigida")
	return c.Redirect(target, fiber.StatusFound)
}

// verifySession verifica el token y nunca hace panic: cualquier fallo inesperado
// se reporta como error de verificación.
func verifySession(secret, issuer, token string) (claims *jwt.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = fmt.Errorf("verificar token: %v", r)
		}
	}()
	return jwt.Parse(secret, issuer, token)
}

// normalizePath limpia "//", "/./", "/../" y pasa a minúsculas para que variantes de
// la misma ruta no esquiven la clasificación.
func normalizePath(p string) string {
	return strings.ToLower(cleanPath(p))
}

// cleanPath limpia la ruta sin alterar mayúsculas.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func isBypassed(p string) bool {
	for _, pub := range publicPaths {
		if p == pub || strings.HasPrefix(p, pub+"/") {
			return true
		}
	}
	for _, a := range assetPaths {
		if p == a || strings.HasPrefix(p, a+"/") {
			return true
		}
	}
	return false
}
