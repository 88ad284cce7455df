package repository

import (
	"context"

	"github.com/jhoicas/Souq-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail busca por coincidencia exacta de email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateRole es la acción administrativa que cambia el rol de una cuenta.
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}
