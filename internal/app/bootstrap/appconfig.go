// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: HTTP ports, TLS, log
// level and the like stay in WAFFLE's CoreConfig.
type AppConfig struct {
	// Storage backend selection: "memory", "redis", or "mongo".
	// Memory keeps everything in-process and is for dev and tests only.
	StoreBackend string

	// Redis configuration (used when StoreBackend is "redis")
	RedisURL string // e.g. redis://localhost:6379/0

	// MongoDB configuration (used when StoreBackend is "mongo")
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: mealhub_session)
	SessionDomain string // Cookie domain (blank means current host)

	// Admin credential. AdminPasswordHash (bcrypt) wins when set;
	// AdminPassword is the plain-text dev fallback.
	AdminPassword     string
	AdminPasswordHash string

	// DefaultEmployees seeds the roster on startup and via
	// POST /api/employees/init when no employees exist yet.
	DefaultEmployees []string
}
