package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "credits", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, StoreDriverSupabase, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Store.MaxAttempts)
	assert.Equal(t, "user_credits", cfg.Supabase.Table)
	assert.Equal(t, "/webhook", cfg.Webhook.Path)
	assert.Equal(t, int64(65536), cfg.Webhook.MaxBodyBytes)
	assert.False(t, cfg.Webhook.Deduplicate)
	assert.Equal(t, int64(50), cfg.Credits.SignupBonus)
	assert.Equal(t, 72*time.Hour, cfg.Redis.EventTTL)
	assert.Empty(t, cfg.Stripe.WebhookSecret, "missing secrets do not fail startup")
}

func TestLoadConfig_EnvAliases(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role")
	t.Setenv("CREDITS_STORE_MAX_ATTEMPTS", "5")
	t.Setenv("CREDITS_WEBHOOK_DEDUPLICATE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "whsec_test", cfg.Stripe.WebhookSecret)
	assert.Equal(t, "https://proj.supabase.co", cfg.Supabase.ProjectURL)
	assert.Equal(t, "service-role", cfg.Supabase.ServiceRoleKey)
	assert.Equal(t, 5, cfg.Store.MaxAttempts)
	assert.True(t, cfg.Webhook.Deduplicate)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: postgres
credits:
  signup_bonus: 25
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, int64(25), cfg.Credits.SignupBonus)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("CREDITS_STORE_DRIVER", "mongo")

	_, err := LoadConfig()
	assert.Error(t, err)
}
