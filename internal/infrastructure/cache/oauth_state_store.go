package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/internal/domain/repository"
)

var _ repository.OAuthStateStore = (*OAuthStateStore)(nil)

const oauthStatePrefix = "oauth:state:"

// OAuthStateStore guarda el state de OAuth en Redis con TTL. El valor es la URL de retorno.
type OAuthStateStore struct {
	client redis.Cmdable
}

// NewOAuthStateStore construye el store sobre un cliente Redis.
func NewOAuthStateStore(client redis.Cmdable) *OAuthStateStore {
	return &OAuthStateStore{client: client}
}

// Save registra el state. Un state repetido se rechaza para no pisar un flujo en curso.
func (s *OAuthStateStore) Save(ctx context.Context, state, callbackURL string, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, oauthStatePrefix+state, callbackURL, ttl).Result()
	if err != nil {
		return fmt.Errorf("guardar state oauth: %w", err)
	}
	if !ok {
		return domain.ErrInvalidOAuthState
	}
	return nil
}

// Consume lee y borra el state en una sola operación (GETDEL).
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", domain.ErrInvalidOAuthState
	}
	v, err := s.client.GetDel(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidOAuthState
		}
		return "", fmt.Errorf("consumir state oauth: %w", err)
	}
	return v, nil
}
