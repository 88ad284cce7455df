package dto

import "time"

// RegisterRequest entrada para registro con credenciales.
// Role es opcional: vacío = customer; solo se acepta además wholesale_customer.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=customer wholesale_customer"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login con credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse resultado de un inicio de sesión. El token viaja solo en la cookie.
type SessionResponse struct {
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
	Redirect  string       `json:"redirect,omitempty"`
}

// SessionView estado de la sesión activa según el token de la cookie (lo consume el front).
type SessionView struct {
	Status         string     `json:"status"` // authenticated | unauthenticated
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Name           string     `json:"name,omitempty"`
	Role           string     `json:"role,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	PermittedPaths []string   `json:"permitted_paths"`
}

// ChangeRoleRequest entrada para que un super_admin asigne un rol.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer wholesale_customer staff super_admin"`
}
