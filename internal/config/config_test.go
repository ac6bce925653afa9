package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Minute, cfg.MatchingInterval)
	assert.Equal(t, 10, cfg.SubmitRatePerMin)
	assert.Equal(t, 5, cfg.LoginRatePerMin)
	assert.True(t, cfg.MigrateOnStart)
	assert.False(t, cfg.TelegramEnabled())
	assert.False(t, cfg.EmailEnabled())
}

func TestParse_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_DSN", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestParse_SupabaseRequiresKey(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("STORE_BACKEND", "supabase")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_KEY", "")

	_, err := Parse()
	require.Error(t, err)
}

func TestParse_ProductionNeedsSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.Error(t, err)

	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestParse_UnknownBackend(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}
