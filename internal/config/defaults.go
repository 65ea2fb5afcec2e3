package config

import "time"

// defaults lists every key so env overrides reach Unmarshal.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":        ServiceName,
		"service.environment": "development",
		"service.version":     "dev",

		"server.http.host":             "0.0.0.0",
		"server.http.port":             8080,
		"server.http.shutdown_timeout": 10 * time.Second,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.file_path":   "",
		"log.development": false,

		"stripe.secret_key":          "",
		"stripe.webhook_secret":      "",
		"stripe.signature_tolerance": 300 * time.Second,
		"stripe.resolve_line_items":  false,

		"supabase.project_url":      "",
		"supabase.service_role_key": "",
		"supabase.jwt_secret":       "",
		"supabase.table":            "user_credits",
		"supabase.timeout":          10 * time.Second,

		"store.driver":       StoreDriverSupabase,
		"store.max_attempts": 3,
		"store.auto_migrate": true,

		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "credits",
		"database.user":               "postgres",
		"database.password":           "",
		"database.sslmode":            "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  30 * time.Minute,
		"database.conn_max_idle_time": 5 * time.Minute,

		"redis.addr":            "",
		"redis.password":        "",
		"redis.db":              0,
		"redis.publish_channel": "credits.applied",
		"redis.event_ttl":       72 * time.Hour,

		"webhook.path":           "/webhook",
		"webhook.max_body_bytes": 65536,
		"webhook.deduplicate":    false,
		"webhook.ledger":         LedgerDriverDatabase,

		"credits.signup_bonus": 50,
		"credits.catalog_file": "",
	}
}
