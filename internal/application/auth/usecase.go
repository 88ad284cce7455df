package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/internal/application/ports"
	"github.com/jhoicas/Souq-api/internal/domain"
	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/internal/domain/repository"
	"github.com/jhoicas/Souq-api/pkg/jwt"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// MinPasswordLength longitud mínima de password para cuentas con credenciales.
const MinPasswordLength = 8

// OAuthStateTTL tiempo máximo entre la redirección al proveedor y el callback.
const OAuthStateTTL = 10 * time.Minute

// ErrUnknownProvider el proveedor OAuth pedido no está configurado.
var ErrUnknownProvider = errors.New("proveedor OAuth no configurado")

// SessionConfig configuración para firmar tokens de sesión.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: registro, login con credenciales y login OAuth.
// Es el único punto que lee el rol desde la DB; después el rol viaja firmado en el token.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	states    repository.OAuthStateStore
	providers map[string]ports.OAuthProvider
	cfg       SessionConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. states puede ser nil si no hay proveedores OAuth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	states repository.OAuthStateStore,
	cfg SessionConfig,
	log *logger.Logger,
	providers ...ports.OAuthProvider,
) *AuthUseCase {
	byName := make(map[string]ports.OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:  userRepo,
		states:    states,
		providers: byName,
		cfg:       cfg,
		log:       log.Component("auth"),
		now:       time.Now,
	}
}

// HasProvider informa si el proveedor OAuth está disponible.
func (uc *AuthUseCase) HasProvider(name string) bool {
	_, ok := uc.providers[name]
	return ok && uc.states != nil
}

// RegisterUser crea una cuenta con credenciales. Los roles de personal no se pueden
// autoasignar: solo customer (por defecto) o wholesale_customer.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(in.Email)
	if !ValidEmail(email) || in.Password == "" || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	role := entity.RoleCustomer
	if in.Role != "" {
		parsed := entity.ParseRole(in.Role)
		if parsed == nil || !parsed.IsCustomerClass() {
			return nil, domain.ErrInvalidInput
		}
		role = *parsed
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Provider:     entity.ProviderCredentials,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica email/password y emite la sesión. Cualquier fallo (email inexistente,
// cuenta solo OAuth, password incorrecto, error de DB) devuelve domain.ErrAuthenticationFailed.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Msg("login: buscar usuario")
		return nil, domain.ErrAuthenticationFailed
	}
	if !user.HasPassword() {
		// Comparación contra un hash señuelo para que el tiempo de respuesta no revele si la cuenta existe.
		_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(in.Password))
		return nil, domain.ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return uc.mintSession(user)
}

// ValidEmail acepta solo una dirección simple (local@dominio), sin nombre visible
// ni espacios alrededor.
func ValidEmail(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

// BeginOAuth registra un state de un solo uso y devuelve la URL del proveedor.
func (uc *AuthUseCase) BeginOAuth(ctx context.Context, providerName, callbackURL string) (string, error) {
	provider, ok := uc.providers[providerName]
	if !ok || uc.states == nil {
		return "", ErrUnknownProvider
	}
	state := uuid.NewString()
	if err := uc.states.Save(ctx, state, access.SafeCallbackURL(callbackURL), OAuthStateTTL); err != nil {
		return "", err
	}
	return provider.AuthCodeURL(state), nil
}

// CompleteOAuth procesa el callback: consume el state, canjea el code y, si el email
// no existe, crea la cuenta como customer sin password. Las cuentas existentes no se modifican.
// Devuelve la sesión y la ruta a la que volver.
func (uc *AuthUseCase) CompleteOAuth(ctx context.Context, providerName, state, code string) (*dto.SessionResponse, string, error) {
	provider, ok := uc.providers[providerName]
	if !ok || uc.states == nil {
		return nil, "", domain.ErrAuthenticationFailed
	}
	callbackURL, err := uc.states.Consume(ctx, state)
	if err != nil {
		uc.log.Warn().Err(err).Str("provider", providerName).Msg("oauth: state rechazado")
		return nil, "", domain.ErrAuthenticationFailed
	}
	identity, err := provider.Exchange(ctx, code)
	if err != nil {
		uc.log.Warn().Err(err).Str("provider", providerName).Msg("oauth: canje fallido")
		return nil, "", domain.ErrAuthenticationFailed
	}

	user, err := uc.findOrCreateOAuthUser(ctx, providerName, identity)
	if err != nil {
		uc.log.Error().Err(err).Str("provider", providerName).Msg("oauth: alta de usuario")
		return nil, "", domain.ErrAuthenticationFailed
	}
	sess, err := uc.mintSession(user)
	if err != nil {
		return nil, "", err
	}
	return sess, callbackURL, nil
}

func (uc *AuthUseCase) findOrCreateOAuthUser(ctx context.Context, providerName string, id *ports.OAuthIdentity) (*entity.User, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := uc.now()
	name := id.Name
	if name == "" {
		name = id.Email
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     id.Email,
		Name:      name,
		Role:      entity.RoleCustomer,
		Provider:  providerName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Dos callbacks simultáneos del mismo email: gana el primero, el segundo relee.
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return uc.userRepo.FindByEmail(ctx, id.Email)
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("provider", providerName).Msg("usuario creado vía oauth")
	return user, nil
}

// mintSession firma user_id y role en el token de sesión.
func (uc *AuthUseCase) mintSession(user *entity.User) (*dto.SessionResponse, error) {
	if user == nil {
		return nil, domain.ErrAuthenticationFailed
	}
	issuedAt := uc.now()
	token, err := jwt.GenerateAt(uc.cfg.Secret, uc.cfg.Issuer, jwt.SessionInput{
		UserID: user.ID,
		Role:   string(user.Role),
		Email:  user.Email,
		Name:   user.Name,
	}, issuedAt, uc.cfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: issuedAt.Add(uc.cfg.TTL),
		User:      *toUserResponse(user),
	}, nil
}

var (
	decoyOnce sync.Once
	decoy     []byte
)

func decoyHash() []byte {
	decoyOnce.Do(func() {
		decoy, _ = bcrypt.GenerateFromPassword([]byte("souq-decoy-password"), bcrypt.DefaultCost)
	})
	return decoy
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
