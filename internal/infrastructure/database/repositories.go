package database

import (
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/adapter/repository"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/config"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Account domainRepo.AccountRepository
	// EventLedger is nil unless webhook deduplication is enabled
	EventLedger domainRepo.EventLedger
	// Transactor is set when the account store and the ledger share the
	// database, so a claim commits only together with its credit
	Transactor domainRepo.Transactor
}

// Backends are the connections repositories may be built on. Either may be nil.
type Backends struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NeedsDB reports whether cfg selects any database-backed repository
func NeedsDB(cfg *config.Config) bool {
	return cfg.Store.Driver == config.StoreDriverPostgres ||
		(cfg.Webhook.Deduplicate && cfg.Webhook.Ledger == config.LedgerDriverDatabase)
}

// NewRepositories creates the repositories selected by cfg
func NewRepositories(cfg *config.Config, backends Backends, logger *zap.Logger) (*Repositories, error) {
	repos := &Repositories{}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if backends.DB == nil {
			return nil, errors.New("store driver postgres requires a database connection")
		}
		repos.Account = repository.NewAccountRepository(backends.DB, logger)
	case config.StoreDriverSupabase:
		if cfg.Supabase.ProjectURL == "" || cfg.Supabase.ServiceRoleKey == "" {
			logger.Warn("Supabase URL or service role key not set; account store calls will fail")
		}
		repos.Account = repository.NewSupabaseAccountRepository(
			cfg.Supabase.ProjectURL,
			cfg.Supabase.ServiceRoleKey,
			cfg.Supabase.Table,
			cfg.Supabase.Timeout,
			logger,
		)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	if !cfg.Webhook.Deduplicate {
		return repos, nil
	}

	switch cfg.Webhook.Ledger {
	case config.LedgerDriverDatabase:
		if backends.DB == nil {
			return nil, errors.New("database event ledger requires a database connection")
		}
		repos.EventLedger = repository.NewEventLedger(backends.DB, logger)
		if cfg.Store.Driver == config.StoreDriverPostgres {
			repos.Transactor = repository.NewTransactor(backends.DB, logger)
		}
	case config.LedgerDriverRedis:
		if backends.Redis == nil {
			return nil, errors.New("redis event ledger requires redis.addr")
		}
		repos.EventLedger = repository.NewRedisEventLedger(backends.Redis, cfg.Redis.EventTTL, logger)
	default:
		return nil, fmt.Errorf("unsupported event ledger: %s", cfg.Webhook.Ledger)
	}

	return repos, nil
}
