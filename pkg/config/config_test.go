package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "ar", cfg.App.DefaultLang)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.OAuth.GoogleEnabled())
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_EnterosComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cr3t")
	v.Set("SESSION_MAX_AGE_DAYS", "3")
	v.Set("HTTP_PORT", "no-numerico")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Session.MaxAgeDays)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un valor no numérico cae al default")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "souq", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/souq?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
