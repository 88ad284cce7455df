package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")

	// ErrAuthenticationFailed es el único resultado visible de un inicio de sesión fallido.
	// No distingue entre email inexistente, password incorrecto o cuenta solo OAuth.
	ErrAuthenticationFailed = errors.New("autenticación fallida")

	// ErrInvalidOAuthState indica un state OAuth desconocido, expirado o ya consumido.
	ErrInvalidOAuthState = errors.New("state OAuth inválido")
)
