package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/application/auth"
	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/i18n"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// ErrorPath página de error de autenticación del front.
const ErrorPath = "/auth/error"

// AuthHandler maneja registro, login, logout, sesión y OAuth.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie SessionCookie
	secret string
	issuer string
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie SessionCookie, secret, issuer string, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{uc: uc, cookie: cookie, secret: secret, issuer: issuer, log: log.Component("auth_handler")}
}

func errorBody(c *fiber.Ctx, code, key string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: i18n.T(GetLang(c), key)}
}

// Register godoc
// @Summary      Registrar cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "INVALID_BODY", i18n.KeyInvalidBody))
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyCredentialsRequired))
	}
	if !auth.ValidEmail(strings.TrimSpace(in.Email)) {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyInvalidEmail))
	}
	if len(in.Password) < auth.MinPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyPasswordTooShort))
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(errorBody(c, "EMAIL_EXISTS", i18n.KeyEmailExists))
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyInvalidRole))
		}
		h.log.Error().Err(err).Msg("registro")
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody(c, "INTERNAL", i18n.KeyInternal))
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión con credenciales
// @Description  Deja el token firmado en la cookie de sesión. Cualquier fallo responde el mismo 401.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body         body   dto.LoginRequest  true   "email, password"
// @Param        callbackUrl  query  string            false  "ruta local a la que volver"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "INVALID_BODY", i18n.KeyInvalidBody))
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyCredentialsRequired))
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if !errors.Is(err, domain.ErrAuthenticationFailed) {
			h.log.Error().Err(err).Msg("login")
		}
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody(c, "AUTH_FAILED", i18n.KeyAuthFailed))
	}
	h.cookie.Set(c, out.Token, out.ExpiresAt)
	out.Redirect = access.SafeCallbackURL(c.Query(access.CallbackParam))
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la cookie. El servidor no guarda lista de revocación.
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.NoticeResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	lang := GetLang(c)
	return c.JSON(dto.NoticeResponse{
		Status:  "signed_out",
		Message: i18n.T(lang, i18n.KeySignedOut),
		Lang:    lang.String(),
		Dir:     i18n.Dir(lang),
	})
}

// LogoutPage borra la cookie y manda al login.
func (h *AuthHandler) LogoutPage(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	return c.Redirect(access.LoginPath, fiber.StatusFound)
}

// Session godoc
// @Summary      Sesión actual
// @Description  Estado de sesión según la cookie; un token inválido se reporta como unauthenticated.
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionView
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	view := dto.SessionView{Status: string(StatusUnauthenticated), PermittedPaths: []string{}}
	token := h.cookie.Read(c)
	if token == "" {
		return c.JSON(view)
	}
	claims, err := verifySession(h.secret, h.issuer, token)
	if err != nil {
		return c.JSON(view)
	}
	role := entity.ParseRole(claims.Role)
	view.Status = string(StatusAuthenticated)
	view.UserID = claims.UserID
	view.Email = claims.Email
	view.Name = claims.Name
	view.Role = roleString(role)
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		view.ExpiresAt = &exp
	}
	if paths := access.PermittedPaths(role); paths != nil {
		view.PermittedPaths = paths
	}
	return c.JSON(view)
}

// OAuthStart godoc
// @Summary      Iniciar login OAuth
// @Tags         auth
// @Param        provider     path   string  true   "google"
// @Param        callbackUrl  query  string  false  "ruta local a la que volver"
// @Success      302
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/oauth/{provider} [get]
func (h *AuthHandler) OAuthStart(c *fiber.Ctx) error {
	provider := c.Params("provider")
	if !h.uc.HasProvider(provider) {
		return c.Status(fiber.StatusNotFound).JSON(errorBody(c, "OAUTH_DISABLED", i18n.KeyOAuthNotConfigured))
	}
	target, err := h.uc.BeginOAuth(c.UserContext(), provider, c.Query(access.CallbackParam))
	if err != nil {
		h.log.Error().Err(err).Str("provider", provider).Msg("oauth: inicio")
		return c.Redirect(authErrorURL("OAuthSignin"), fiber.StatusFound)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// OAuthCallback godoc
// @Summary      Callback del proveedor OAuth
// @Tags         auth
// @Param        provider  path   string  true   "google"
// @Param        state     query  string  true   "state emitido en el inicio"
// @Param        code      query  string  true   "code de autorización"
// @Success      302
// @Router       /api/auth/callback/{provider} [get]
func (h *AuthHandler) OAuthCallback(c *fiber.Ctx) error {
	provider := c.Params("provider")
	if c.Query("error") != "" || c.Query("code") == "" {
		return c.Redirect(authErrorURL("AuthenticationFailed"), fiber.StatusFound)
	}
	out, callbackURL, err := h.uc.CompleteOAuth(c.UserContext(), provider, c.Query("state"), c.Query("code"))
	if err != nil {
		return c.Redirect(authErrorURL("AuthenticationFailed"), fiber.StatusFound)
	}
	h.cookie.Set(c, out.Token, out.ExpiresAt)
	return c.Redirect(access.SafeCallbackURL(callbackURL), fiber.StatusFound)
}

func authErrorURL(code string) string {
	return ErrorPath + "?error=" + url.QueryEscape(code)
}
