// seed_admin crea la cuenta super_admin inicial o promueve una existente.
// Es la única vía para obtener un rol de personal: el registro público solo admite clientes.
//
// Uso: go run ./cmd/seed_admin -email admin@souq.example -password '...' [-name 'مدير النظام'] [-role staff]
// Lee la conexión a PostgreSQL de las mismas variables de entorno que la API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Souq-api/internal/application/auth"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Souq-api/pkg/config"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

func main() {
	emailFlag := flag.String("email", "", "email de la cuenta")
	password := flag.String("password", "", "contraseña (solo si la cuenta no existe)")
	name := flag.String("name", "", "nombre visible")
	roleFlag := flag.String("role", string(entity.RoleSuperAdmin), "rol de personal: staff | super_admin")
	flag.Parse()

	role := entity.ParseRole(*roleFlag)
	if role == nil || !role.IsStaffClass() {
		fmt.Fprintf(os.Stderr, "rol inválido %q: use staff o super_admin\n", *roleFlag)
		os.Exit(2)
	}
	email, err := accountEmail(*emailFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	repo := postgres.NewUserRepository(pool)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		if existing.Role == *role {
			log.Info().Str("user_id", existing.ID).Str("role", string(*role)).Msg("la cuenta ya tiene el rol")
			return
		}
		if err := repo.UpdateRole(ctx, existing.ID, *role); err != nil {
			log.Fatal().Err(err).Msg("actualizar rol")
		}
		log.Info().
			Str("user_id", existing.ID).
			Str("from", string(existing.Role)).
			Str("to", string(*role)).
			Msg("rol actualizado; las sesiones abiertas conservan el rol anterior hasta expirar")
		return
	}

	if len(*password) < auth.MinPasswordLength {
		log.Fatal().Msg("la contraseña debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         displayName,
		PasswordHash: string(hash),
		Role:         *role,
		Provider:     entity.ProviderCredentials,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("crear usuario")
	}
	log.Info().Str("user_id", user.ID).Str("role", string(*role)).Msg("cuenta de personal creada")
}

// accountEmail normaliza el -email una sola vez; búsqueda y alta usan el mismo valor.
func accountEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", errors.New("falta -email")
	}
	if !auth.ValidEmail(email) {
		return "", fmt.Errorf("email inválido %q", email)
	}
	return email, nil
}
