package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jhoicas/Souq-api/internal/application/ports"
	"github.com/jhoicas/Souq-api/pkg/config"
)

var _ ports.OAuthProvider = (*GoogleProvider)(nil)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// ErrUnverifiedEmail el proveedor no confirma la propiedad del email.
var ErrUnverifiedEmail = errors.New("oauth: email no verificado por el proveedor")

// GoogleProvider adaptador OAuth2/OpenID Connect para Google.
type GoogleProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider construye el adaptador con las credenciales de la app.
func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return newGoogleProvider(&oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}, googleUserInfoURL)
}

func newGoogleProvider(cfg *oauth2.Config, userInfoURL string) *GoogleProvider {
	return &GoogleProvider{cfg: cfg, userInfoURL: userInfoURL}
}

// Name implementa ports.OAuthProvider.
func (p *GoogleProvider) Name() string { return "google" }

// AuthCodeURL implementa ports.OAuthProvider.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Exchange canjea el code por un access token y consulta el perfil del usuario.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*ports.OAuthIdentity, error) {
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth: canjear code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oauth: armar request userinfo: %w", err)
	}
	resp, err := p.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth: userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("oauth: userinfo status %d: %s", resp.StatusCode, body)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("oauth: decodificar userinfo: %w", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, ErrUnverifiedEmail
	}
	return &ports.OAuthIdentity{Email: info.Email, Name: info.Name}, nil
}
