package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	pkgconfig "github.com/v5hhrxpsqg-tech/Scribeer/pkg/config"
	"github.com/v5hhrxpsqg-tech/Scribeer/pkg/logger"
)

// ServiceName is used as the config file name and the env prefix (CREDITS_*).
const ServiceName = "credits"

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      logger.Config  `mapstructure:"log"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Credits  CreditsConfig  `mapstructure:"credits"`
}

// envAliases binds the variable names used by the Supabase edge function deployment.
var envAliases = map[string][]string{
	"stripe.secret_key":         {"STRIPE_SECRET_KEY"},
	"stripe.webhook_secret":     {"STRIPE_WEBHOOK_SECRET"},
	"supabase.project_url":      {"SUPABASE_URL"},
	"supabase.service_role_key": {"SUPABASE_SERVICE_ROLE_KEY"},
	"supabase.jwt_secret":       {"SUPABASE_JWT_SECRET"},
	"server.http.port":          {"PORT"},
}

// LoadConfig reads configs/<APP_ENV>/credits.yaml (optional) and the environment.
// Secrets are never required here; a missing webhook secret surfaces per request.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(ServiceName,
		pkgconfig.WithDefaults(defaults()),
		pkgconfig.WithEnvAliases(envAliases),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks structural settings. Credentials are not validated.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
