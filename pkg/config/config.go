package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "LIBRERIA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:libreria.db?_foreign_keys=1"
)

const (
	EnvAppEnv                 = "LIBRERIA_APP_ENV"
	EnvPort                   = "LIBRERIA_APP_PORT"
	EnvDBDSN                  = "LIBRERIA_DB_DSN"
	EnvDBDriver               = "LIBRERIA_DB_DRIVER"
	EnvDBHost                 = "LIBRERIA_DB_HOST"
	EnvDBUser                 = "LIBRERIA_DB_USER"
	EnvDBName                 = "LIBRERIA_DB_NAME"
	EnvRedisURL               = "LIBRERIA_REDIS_URL"
	EnvJWTSecret              = "LIBRERIA_JWT_SECRET"
	EnvJWTIssuer              = "LIBRERIA_JWT_ISSUER"
	EnvJWTExpMins             = "LIBRERIA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "LIBRERIA_REFRESH_TOKEN_TTL_MINUTES"
	EnvFeaturedCategories     = "LIBRERIA_CATALOG_FEATURED_CATEGORIES"
	EnvCronInterval           = "LIBRERIA_CRON_INTERVAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	Cron          CronConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	cfg.Catalog.normalize()
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"LIBRERIA_APP_ENV" required:"true"`
	Port         string   `envconfig:"LIBRERIA_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"LIBRERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"LIBRERIA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"LIBRERIA_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	env := strings.TrimSpace(a.Env)
	return strings.EqualFold(env, AppEnvDev) || strings.EqualFold(env, "development")
}

func (a AppConfig) IsProd() bool {
	env := strings.TrimSpace(a.Env)
	return strings.EqualFold(env, AppEnvProd) || strings.EqualFold(env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"LIBRERIA_DB_DSN"`
	Driver string `envconfig:"LIBRERIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LIBRERIA_DB_HOST"`
	LegacyPort     int    `envconfig:"LIBRERIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LIBRERIA_DB_USER"`
	LegacyPassword string `envconfig:"LIBRERIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"LIBRERIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"LIBRERIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LIBRERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIBRERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIBRERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIBRERIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LIBRERIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LIBRERIA_REDIS_ADDR"`
	Password     string        `envconfig:"LIBRERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LIBRERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LIBRERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIBRERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIBRERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIBRERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIBRERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
	// IdempotencyTTL bounds how long a stored checkout response is replayed.
	IdempotencyTTL time.Duration `envconfig:"LIBRERIA_IDEMPOTENCY_TTL" default:"24h"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LIBRERIA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LIBRERIA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"LIBRERIA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"LIBRERIA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LIBRERIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LIBRERIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LIBRERIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LIBRERIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LIBRERIA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow             time.Duration `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit    int           `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit            int           `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow          time.Duration `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentifierLimit int           `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_REGISTER_IDENTIFIER_LIMIT" default:"3"`
	RegisterIPLimit         int           `envconfig:"LIBRERIA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CatalogConfig struct {
	// FeaturedCategories lists the category names shown on the storefront,
	// matched exactly.
	FeaturedCategories []string `envconfig:"LIBRERIA_CATALOG_FEATURED_CATEGORIES" default:"Poesía,Novela,Historia"`
}

func (c *CatalogConfig) normalize() {
	names := make([]string, 0, len(c.FeaturedCategories))
	for _, name := range c.FeaturedCategories {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	c.FeaturedCategories = names
}

type CronConfig struct {
	Interval time.Duration `envconfig:"LIBRERIA_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"LIBRERIA_CRON_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LIBRERIA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	if db.Driver == "" {
		db.Driver = DriverPostgres
	}
	switch db.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}

	if db.DSN != "" {
		return nil
	}

	switch db.Driver {
	case DriverSQLite:
		db.DSN = defaultSQLiteDSN
		return nil
	case DriverMySQL:
		return fmt.Errorf("%s is required for the %s driver", EnvDBDSN, DriverMySQL)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
