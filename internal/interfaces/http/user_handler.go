package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/application/usecase"
	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/pkg/i18n"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// UserHandler administración de usuarios (solo super_admin).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &UserHandler{uc: uc, log: log.Component("user_handler")}
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Cambiar el rol de un usuario
// @Description  Las sesiones ya emitidas conservan el rol anterior hasta expirar.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "rol"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "INVALID_BODY", i18n.KeyInvalidBody))
	}
	out, err := h.uc.ChangeRole(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody(c, "NOT_FOUND", i18n.KeyUserNotFound))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "VALIDATION", i18n.KeyInvalidRole))
	case errors.Is(err, usecase.ErrSelfDemotion):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(c, "SELF_ROLE_CHANGE", i18n.KeySelfRoleChange))
	}
	h.log.Error().Err(err).Msg("administración de usuarios")
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody(c, "INTERNAL", i18n.KeyInternal))
}
