package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/internal/domain/repository"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// ErrSelfDemotion un super_admin no puede quitarse su propio rol.
var ErrSelfDemotion = errors.New("no se puede cambiar el rol propio")

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, log: log.Component("users")}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// ChangeRole asigna un rol a otro usuario. El cambio no alcanza a las sesiones ya
// emitidas: el usuario lo verá al volver a iniciar sesión.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actorID, targetID string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	role := entity.ParseRole(in.Role)
	if role == nil || !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if actorID == targetID {
		return nil, ErrSelfDemotion
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != *role {
		if err := uc.repo.UpdateRole(ctx, targetID, *role); err != nil {
			return nil, err
		}
		uc.log.Info().
			Str("actor_id", actorID).
			Str("user_id", targetID).
			Str("from", string(user.Role)).
			Str("to", string(*role)).
			Msg("rol actualizado")
		user.Role = *role
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
}
