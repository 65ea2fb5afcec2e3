package config

import "time"

const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"

	LedgerDriverDatabase = "database"
	LedgerDriverRedis    = "redis"
)

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type StripeConfig struct {
	SecretKey          string        `mapstructure:"secret_key"`
	WebhookSecret      string        `mapstructure:"webhook_secret"`
	SignatureTolerance time.Duration `mapstructure:"signature_tolerance" validate:"gte=0"`
	// ResolveLineItems looks up the purchased price through the Stripe API
	// when a checkout payload carries no line items. Needs SecretKey.
	ResolveLineItems bool `mapstructure:"resolve_line_items"`
}

type SupabaseConfig struct {
	ProjectURL     string        `mapstructure:"project_url"`
	ServiceRoleKey string        `mapstructure:"service_role_key"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Table          string        `mapstructure:"table" validate:"required"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects the account store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=supabase postgres"`
	// MaxAttempts bounds the read-then-conditional-write cycle on conflicts.
	MaxAttempts int  `mapstructure:"max_attempts" validate:"min=1,max=10"`
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	PublishChannel string        `mapstructure:"publish_channel"`
	EventTTL       time.Duration `mapstructure:"event_ttl"`
}

type WebhookConfig struct {
	Path         string `mapstructure:"path" validate:"required,startswith=/"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" validate:"gt=0"`
	// Deduplicate claims each provider event id before crediting. Off by
	// default: a redelivered event is credited again.
	Deduplicate bool   `mapstructure:"deduplicate"`
	Ledger      string `mapstructure:"ledger" validate:"oneof=database redis"`
}

type CreditsConfig struct {
	SignupBonus int64  `mapstructure:"signup_bonus" validate:"gte=0"`
	CatalogFile string `mapstructure:"catalog_file"`
}
