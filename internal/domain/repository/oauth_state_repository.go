package repository

import (
	"context"
	"time"
)

// OAuthStateStore guarda el parámetro state de OAuth entre la redirección al proveedor
// y el callback. Consume es de un solo uso: una segunda llamada con el mismo state falla.
type OAuthStateStore interface {
	Save(ctx context.Context, state, callbackURL string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (callbackURL string, err error)
}
