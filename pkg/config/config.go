package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const minProdSecretLen = 32

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Wizard        WizardConfig
	Seed          SeedConfig
}

// Load reads the WINDOWQUOTE_* environment and reports every invalid setting at once.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.resolveDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules envconfig tags cannot express.
func (c *Config) Validate() error {
	var errs error
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s must be numeric, got %q", EnvPort, c.App.Port))
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be json or console, got %q", EnvLogFormat, c.App.LogFormat))
	}
	if c.JWT.ExpirationMinutes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvJWTExpMins))
	}
	if c.JWT.RefreshTokenTTL() < c.JWT.AccessTokenTTL() {
		errs = multierr.Append(errs, fmt.Errorf("%s must not be shorter than the access token lifetime", EnvRefreshTokenTTLMinutes))
	}
	if c.Wizard.SessionTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvWizardSessionTTL))
	}
	if c.App.IsProd() {
		if len(c.JWT.Secret) < minProdSecretLen {
			errs = multierr.Append(errs, fmt.Errorf("%s must be at least %d bytes in prod", EnvJWTSecret, minProdSecretLen))
		}
		if c.FeatureFlags.UseSQLite {
			errs = multierr.Append(errs, fmt.Errorf("%s is not allowed in prod", EnvUseSQLite))
		}
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"WINDOWQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"WINDOWQUOTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WINDOWQUOTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WINDOWQUOTE_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"WINDOWQUOTE_LOG_FORMAT" default:"json"`

	CORSAllowedOrigins []string `envconfig:"WINDOWQUOTE_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// HTTPConfig holds the api server timeouts.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `envconfig:"WINDOWQUOTE_HTTP_READ_HEADER_TIMEOUT" default:"10s"`
	ReadTimeout       time.Duration `envconfig:"WINDOWQUOTE_HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout      time.Duration `envconfig:"WINDOWQUOTE_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout       time.Duration `envconfig:"WINDOWQUOTE_HTTP_IDLE_TIMEOUT" default:"2m"`
	ShutdownTimeout   time.Duration `envconfig:"WINDOWQUOTE_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

// DBConfig accepts either a full DSN or discrete connection fields.
type DBConfig struct {
	DSN        string `envconfig:"WINDOWQUOTE_DB_DSN"`
	Driver     string `envconfig:"WINDOWQUOTE_DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"WINDOWQUOTE_SQLITE_PATH" default:"windowquote.db"`

	Host     string `envconfig:"WINDOWQUOTE_DB_HOST"`
	Port     int    `envconfig:"WINDOWQUOTE_DB_PORT" default:"5432"`
	User     string `envconfig:"WINDOWQUOTE_DB_USER"`
	Password string `envconfig:"WINDOWQUOTE_DB_PASSWORD"`
	Name     string `envconfig:"WINDOWQUOTE_DB_NAME"`
	SSLMode  string `envconfig:"WINDOWQUOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WINDOWQUOTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WINDOWQUOTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WINDOWQUOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WINDOWQUOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"WINDOWQUOTE_DB_SLOW_QUERY_THRESHOLD" default:"250ms"`
	LogQueries         bool          `envconfig:"WINDOWQUOTE_DB_LOG_QUERIES" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WINDOWQUOTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WINDOWQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"WINDOWQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"WINDOWQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WINDOWQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WINDOWQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WINDOWQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WINDOWQUOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WINDOWQUOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"WINDOWQUOTE_REDIS_KEY_PREFIX" default:"wq"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WINDOWQUOTE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WINDOWQUOTE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WINDOWQUOTE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WINDOWQUOTE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL is zero when unset or negative.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WINDOWQUOTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WINDOWQUOTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WINDOWQUOTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WINDOWQUOTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WINDOWQUOTE_ARGON_KEY_LEN" default:"32"`
}

// AuthRateLimitConfig limits login per client IP and per username, and refresh per IP.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WINDOWQUOTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"WINDOWQUOTE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WINDOWQUOTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RefreshWindow      time.Duration `envconfig:"WINDOWQUOTE_AUTH_RATE_LIMIT_REFRESH_WINDOW" default:"1m"`
	RefreshIPLimit     int           `envconfig:"WINDOWQUOTE_AUTH_RATE_LIMIT_REFRESH_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WINDOWQUOTE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WINDOWQUOTE_AUTO_MIGRATE" default:"false"`
}

// WizardConfig bounds how long configurator sessions and the cached catalog live in Redis.
type WizardConfig struct {
	SessionTTL      time.Duration `envconfig:"WINDOWQUOTE_WIZARD_SESSION_TTL" default:"72h"`
	CatalogCacheTTL time.Duration `envconfig:"WINDOWQUOTE_CATALOG_CACHE_TTL" default:"10m"`
}

type SeedConfig struct {
	AdminUsername string `envconfig:"WINDOWQUOTE_SEED_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"WINDOWQUOTE_SEED_ADMIN_PASSWORD" default:"admin123"`
	AdminEmail    string `envconfig:"WINDOWQUOTE_SEED_ADMIN_EMAIL" default:"admin@windowshawaii.com"`
}

// resolveDSN builds the DSN from discrete fields when none is given, then parses it so a
// malformed value fails at startup instead of on first query.
func (db *DBConfig) resolveDSN() error {
	if db.DSN == "" {
		var missing []string
		for env, value := range map[string]string{EnvDBHost: db.Host, EnvDBUser: db.User, EnvDBName: db.Name} {
			if value == "" {
				missing = append(missing, env)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
		}
		db.DSN = db.buildDSN()
	}
	if _, err := pgconn.ParseConfig(db.DSN); err != nil {
		return fmt.Errorf("%s is invalid: %w", EnvDBDSN, err)
	}
	return nil
}

func (db DBConfig) buildDSN() string {
	user := url.User(db.User)
	if db.Password != "" {
		user = url.UserPassword(db.User, db.Password)
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
	}
	return u.String()
}
