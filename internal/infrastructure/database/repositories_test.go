package database

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/config"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func baseConfig() *config.Config {
	return &config.Config{
		Supabase: config.SupabaseConfig{Table: "user_credits", Timeout: time.Second},
		Store:    config.StoreConfig{Driver: config.StoreDriverSupabase, MaxAttempts: 3},
		Webhook:  config.WebhookConfig{Ledger: config.LedgerDriverDatabase},
		Redis:    config.RedisConfig{EventTTL: time.Hour},
	}
}

func TestMigrate(t *testing.T) {
	t.Run("ledger only", func(t *testing.T) {
		db := newTestDB(t)
		require.NoError(t, Migrate(db, zap.NewNop(), false))
		assert.True(t, db.Migrator().HasTable(&model.ProcessedWebhookEvent{}))
		assert.False(t, db.Migrator().HasTable(&model.UserCredit{}))
	})

	t.Run("with accounts", func(t *testing.T) {
		db := newTestDB(t)
		require.NoError(t, Migrate(db, zap.NewNop(), true))
		assert.True(t, db.Migrator().HasTable("user_credits"))
		assert.True(t, db.Migrator().HasColumn(&model.UserCredit{}, "credits_remaining_mb"))
		assert.True(t, db.Migrator().HasColumn(&model.UserCredit{}, "last_used"))
	})
}

func TestNewRepositories(t *testing.T) {
	logger := zap.NewNop()

	t.Run("supabase without ledger", func(t *testing.T) {
		repos, err := NewRepositories(baseConfig(), Backends{}, logger)
		require.NoError(t, err)
		assert.NotNil(t, repos.Account)
		assert.Nil(t, repos.EventLedger)
	})

	t.Run("postgres requires a database", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Store.Driver = config.StoreDriverPostgres
		_, err := NewRepositories(cfg, Backends{}, logger)
		assert.Error(t, err)

		repos, err := NewRepositories(cfg, Backends{DB: newTestDB(t)}, logger)
		require.NoError(t, err)
		assert.NotNil(t, repos.Account)
	})

	t.Run("database ledger", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Webhook.Deduplicate = true
		repos, err := NewRepositories(cfg, Backends{DB: newTestDB(t)}, logger)
		require.NoError(t, err)
		assert.NotNil(t, repos.EventLedger)
		assert.Nil(t, repos.Transactor, "supabase accounts cannot share a database transaction")
	})

	t.Run("postgres store with database ledger shares a transaction", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Store.Driver = config.StoreDriverPostgres
		cfg.Webhook.Deduplicate = true
		repos, err := NewRepositories(cfg, Backends{DB: newTestDB(t)}, logger)
		require.NoError(t, err)
		assert.NotNil(t, repos.EventLedger)
		assert.NotNil(t, repos.Transactor)
	})

	t.Run("redis ledger", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Webhook.Deduplicate = true
		cfg.Webhook.Ledger = config.LedgerDriverRedis
		_, err := NewRepositories(cfg, Backends{}, logger)
		assert.Error(t, err)

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		repos, err := NewRepositories(cfg, Backends{Redis: client}, logger)
		require.NoError(t, err)
		assert.NotNil(t, repos.EventLedger)
	})
}

func TestNeedsDB(t *testing.T) {
	cfg := baseConfig()
	assert.False(t, NeedsDB(cfg))

	cfg.Webhook.Deduplicate = true
	assert.True(t, NeedsDB(cfg))

	cfg.Webhook.Ledger = config.LedgerDriverRedis
	assert.False(t, NeedsDB(cfg))

	cfg.Store.Driver = config.StoreDriverPostgres
	assert.True(t, NeedsDB(cfg))
}
