// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MealHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: store_backend, session_name, etc.
//   - Environment variables: MEALHUB_STORE_BACKEND, MEALHUB_SESSION_NAME, etc.
//   - Command-line flags: --store_backend, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: "redis", Desc: "Storage backend: 'redis', 'mongo', or 'memory' (dev only)"},
	{Name: "redis_url", Default: "redis://localhost:6379/0", Desc: "Redis connection URL"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mealhub", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "mealhub_session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "admin_password", Default: "admin123", Desc: "Shared admin password (plain text, dev fallback)"},
	{Name: "admin_password_hash", Default: "", Desc: "Bcrypt hash of the admin password (overrides admin_password)"},

	{Name: "default_employees", Default: "", Desc: "Comma-separated names used to seed the roster when empty"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MEALHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEALHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend:  appValues.String("store_backend"),
		RedisURL:      appValues.String("redis_url"),
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AdminPassword:     appValues.String("admin_password"),
		AdminPasswordHash: appValues.String("admin_password_hash"),

		DefaultEmployees: splitNames(appValues.String("default_employees")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Connection strings are checked here so misconfiguration fails fast
// instead of surfacing as a connect timeout later.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case "redis", "memory":
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	default:
		return fmt.Errorf("store_backend must be 'redis', 'mongo', or 'memory', got %q", appCfg.StoreBackend)
	}

	if appCfg.StoreBackend == "memory" && coreCfg.Env == "prod" {
		logger.Warn("memory store backend in prod: all data is lost on restart")
	}

	if appCfg.AdminPasswordHash == "" && appCfg.AdminPassword == "admin123" && coreCfg.Env == "prod" {
		logger.Warn("admin password is the well-known default; set admin_password_hash")
	}

	return nil
}

func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
