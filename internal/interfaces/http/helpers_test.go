package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/jhoicas/Souq-api/internal/application/auth"
	"github.com/jhoicas/Souq-api/internal/application/ports"
	"github.com/jhoicas/Souq-api/internal/application/usecase"
	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Souq-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Souq-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "souq-test"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

var devCookie = apphttp.NewSessionCookie(false)

// tokenFor genera un token de sesión válido con el rol indicado.
func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, testIssuer, pkgjwt.SessionInput{UserID: testUserID, Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

// get lanza un GET con cookie de sesión opcional ("" = sin cookie).
func get(t *testing.T, app *fiber.App, path, token string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: devCookie.Name, Value: token})
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, app *fiber.App, path, body string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func sessionCookieFrom(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == devCookie.Name {
			return c
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de puertos
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type memStateStore struct {
	mu     sync.Mutex
	states map[string]string
}

func (s *memStateStore) Save(_ context.Context, state, cb string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = cb
	return nil
}

func (s *memStateStore) Consume(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cb, ok := s.states[state]
	if !ok {
		return "", domain.ErrInvalidOAuthState
	}
	delete(s.states, state)
	return cb, nil
}

type fakeProvider struct{}

func (fakeProvider) Name() string                    { return "google" }
func (fakeProvider) AuthCodeURL(state string) string { return "https://accounts.test/auth?state=" + state }
func (fakeProvider) Exchange(context.Context, string) (*ports.OAuthIdentity, error) {
	return &ports.OAuthIdentity{Email: "nuevo.oauth@souq.test", Name: "عمر"}, nil
}

// newServer arma la app completa (router + gate) con repositorio en memoria.
// Con withOAuth se registra el proveedor falso de Google.
func newServer(t *testing.T, withOAuth bool) (*fiber.App, *memUserRepo) {
	t.Helper()
	repo := &memUserRepo{users: map[string]*entity.User{}}
	var providers []ports.OAuthProvider
	if withOAuth {
		providers = append(providers, fakeProvider{})
	}
	uc := auth.NewAuthUseCase(repo, &memStateStore{states: map[string]string{}}, auth.SessionConfig{
		Secret: testSecret,
		TTL:    7 * 24 * time.Hour,
		Issuer: testIssuer,
	}, nil, providers...)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        uc,
		UserUC:        usecase.NewUserUseCase(repo, nil),
		Cookie:        devCookie,
		SessionSecret: testSecret,
		SessionIssuer: testIssuer,
		DefaultLang:   language.Arabic,
	})
	return app, repo
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string, role entity.Role) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: "id-" + email, Email: email, Name: email, PasswordHash: string(hash),
		Role: role, Provider: entity.ProviderCredentials,
	}))
	return "id-" + email
}
