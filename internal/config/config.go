package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	ERP       ERPConfig       `yaml:"erp"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Cache     CacheConfig     `yaml:"cache"`
	Sync      SyncConfig      `yaml:"sync"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	PubSub    PubSubConfig    `yaml:"pubsub"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL connection settings for the application store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// ERPConfig holds connection settings for the Mikro ERP SQL Server database.
// The env names are shared with the legacy data-access server.
type ERPConfig struct {
	Server          string        `yaml:"server"            env:"DB_SERVER"             env-required:"true"`
	Port            int           `yaml:"port"              env:"DB_PORT"               env-default:"1433"`
	Database        string        `yaml:"database"          env:"DB_DATABASE"           env-required:"true"`
	User            string        `yaml:"user"              env:"DB_USER"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"`
	Encrypt         bool          `yaml:"encrypt"           env:"DB_ENCRYPT"            env-default:"false"`
	TrustServerCert bool          `yaml:"trust_server_cert" env:"DB_TRUST_SERVER_CERT"  env-default:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"     env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"     env-default:"2"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"  env-default:"30m"`
	QueryTimeout    time.Duration `yaml:"query_timeout"     env:"DB_QUERY_TIMEOUT"      env-default:"30s"`
}

// DSN builds a sqlserver:// connection URL.
func (c ERPConfig) DSN() string {
	q := url.Values{}
	q.Set("database", c.Database)
	if c.Encrypt {
		q.Set("encrypt", "true")
	} else {
		q.Set("encrypt", "disable")
	}
	q.Set("TrustServerCertificate", strconv.FormatBool(c.TrustServerCert))

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     fmt.Sprintf("%s:%d", c.Server, c.Port),
		RawQuery: q.Encode(),
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

// RedisConfig holds Redis settings. An empty Addr disables Redis; the
// service then uses in-process caches and locks.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"          env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"          env-default:"mikro-backoffice"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"    env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"   env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST"  env-default:"12"`
	PermissionTTL    time.Duration `yaml:"permission_ttl"     env:"AUTH_PERMISSION_TTL"      env-default:"1m"`
}

// CacheConfig bounds the read-through caches for ERP customers and products.
type CacheConfig struct {
	Size int           `yaml:"size" env:"CACHE_SIZE" env-default:"5000"`
	TTL  time.Duration `yaml:"ttl"  env:"CACHE_TTL"  env-default:"10m"`
}

// SyncConfig holds pull-sync scheduling settings.
type SyncConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"SYNC_ENABLED"    env-default:"true"`
	Interval  time.Duration `yaml:"interval"   env:"SYNC_INTERVAL"   env-default:"5m"`
	LockTTL   time.Duration `yaml:"lock_ttl"   env:"SYNC_LOCK_TTL"   env-default:"4m"`
	BatchSize int           `yaml:"batch_size" env:"SYNC_BATCH_SIZE" env-default:"500"`
	PriceList int           `yaml:"price_list" env:"SYNC_PRICE_LIST" env-default:"1"`
}

// WorkflowConfig holds workflow defaults applied when no setting row exists.
type WorkflowConfig struct {
	// DefaultGating is the approval gating for every approval type until an
	// administrator overrides it.
	DefaultGating           bool   `yaml:"default_gating"            env:"WORKFLOW_DEFAULT_GATING"            env-default:"true"`
	InventoryRequireApprove bool   `yaml:"inventory_require_approve" env:"WORKFLOW_INVENTORY_REQUIRE_APPROVE" env-default:"true"`
	DefaultSeries           string `yaml:"default_series"            env:"WORKFLOW_DEFAULT_SERIES"            env-default:"A"`
	// Timezone bounds business days for reports.
	Timezone string `yaml:"timezone" env:"WORKFLOW_TIMEZONE" env-default:"Europe/Istanbul"`
}

// Location returns the business timezone, falling back to UTC when Timezone
// is empty.
func (c WorkflowConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PubSubConfig holds Google Cloud Pub/Sub settings for domain events.
// An empty ProjectID logs events instead of publishing them.
type PubSubConfig struct {
	ProjectID string `yaml:"project_id" env:"PUBSUB_PROJECT_ID"`
	Topic     string `yaml:"topic"      env:"PUBSUB_TOPIC"      env-default:"backoffice-events"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the login and refresh endpoints.
type RateLimitConfig struct {
	LoginPerMinute int           `yaml:"login_per_minute" env:"RATE_LIMIT_LOGIN_PER_MINUTE" env-default:"10"`
	MaxClients     int           `yaml:"max_clients"      env:"RATE_LIMIT_MAX_CLIENTS"      env-default:"10000"`
	IdleTTL        time.Duration `yaml:"idle_ttl"         env:"RATE_LIMIT_IDLE_TTL"         env-default:"10m"`
}
