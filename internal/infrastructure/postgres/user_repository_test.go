package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Souq-api/internal/domain/entity"
)

func TestRoleFromColumn(t *testing.T) {
	assert.Equal(t, entity.RoleStaff, roleFromColumn("staff"))
	assert.Equal(t, entity.RoleSuperAdmin, roleFromColumn("super_admin"))
	assert.Equal(t, entity.RoleUnrecognized, roleFromColumn("admin"))
	assert.Equal(t, entity.RoleUnrecognized, roleFromColumn(""))
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
