package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/i18n"
)

// El guard de página es cosmético: oculta o redirige dentro de páginas ya admitidas.
// La frontera de seguridad es EdgeGate; nada de aquí debe usarse como único control.

// SessionPendingHeader lo envía el front mientras su consulta de sesión sigue en curso.
const SessionPendingHeader = "X-Session-Pending"

// SessionStatus fase de la sesión vista por la página.
type SessionStatus string

const (
	StatusLoading         SessionStatus = "loading"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// SessionState estado de sesión derivado para renderizar.
type SessionState struct {
	Status SessionStatus
	Role   *entity.Role
	UserID string
}

// ResolveSession deriva el estado desde lo que dejó EdgeGate en locals.
// loading → rol nulo; authenticated → rol del claim; unauthenticated → rol nulo.
func ResolveSession(c *fiber.Ctx) SessionState {
	if c.Get(SessionPendingHeader) == "1" {
		return SessionState{Status: StatusLoading}
	}
	if role := GetRole(c); role != nil {
		return SessionState{Status: StatusAuthenticated, Role: role, UserID: GetUserID(c)}
	}
	return SessionState{Status: StatusUnauthenticated}
}

// GuardOutcome qué debe hacer la página.
type GuardOutcome int

const (
	OutcomePlaceholder GuardOutcome = iota // sesión cargando: ni contenido ni redirección
	OutcomeRender
	OutcomeDenied
)

// Decide aplica el guard: mientras carga siempre placeholder; luego render si el rol
// está en allowed y denegado en cualquier otro caso (incluido rol no reconocido).
func Decide(state SessionState, allowed []entity.Role) GuardOutcome {
	if state.Status == StatusLoading {
		return OutcomePlaceholder
	}
	if state.Status != StatusAuthenticated || state.Role == nil {
		return OutcomeDenied
	}
	for _, r := range allowed {
		if *state.Role == r {
			return OutcomeRender
		}
	}
	return OutcomeDenied
}

// WithRoles envuelve un handler de página: si el rol no está permitido redirige
// (al login sin sesión, o al home que corresponda al rol).
func WithRoles(allowed []entity.Role, next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := ResolveSession(c)
		switch Decide(state, allowed) {
		case OutcomePlaceholder:
			return Placeholder(c)
		case OutcomeRender:
			return next(c)
		}
		if state.Status == StatusUnauthenticated {
			return c.Redirect(access.LoginRedirectURL(c.Path()), fiber.StatusFound)
		}
		return c.Redirect(access.UnauthorizedRedirectTarget(state.Role), fiber.StatusFound)
	}
}

// RoleGate renderiza content si el rol está permitido y fallback si no.
// Con fallback nil se usa UnauthorizedNotice.
func RoleGate(c *fiber.Ctx, allowed []entity.Role, content, fallback fiber.Handler) error {
	switch Decide(ResolveSession(c), allowed) {
	case OutcomePlaceholder:
		return Placeholder(c)
	case OutcomeRender:
		return content(c)
	}
	if fallback == nil {
		return UnauthorizedNotice(c)
	}
	return fallback(c)
}

// Placeholder respuesta mientras la sesión carga.
func Placeholder(c *fiber.Ctx) error {
	lang := GetLang(c)
	return c.Status(fiber.StatusAccepted).JSON(dto.NoticeResponse{
		Status:  "placeholder",
		Message: i18n.T(lang, i18n.KeyLoading),
		Lang:    lang.String(),
		Dir:     i18n.Dir(lang),
	})
}

// UnauthorizedNotice aviso localizado con el mensaje propio de la clase de rol.
func UnauthorizedNotice(c *fiber.Ctx) error {
	lang := GetLang(c)
	return c.Status(fiber.StatusForbidden).JSON(dto.NoticeResponse{
		Status:  "unauthorized",
		Message: access.UnauthorizedMessage(GetRole(c), lang),
		Lang:    lang.String(),
		Dir:     i18n.Dir(lang),
	})
}
