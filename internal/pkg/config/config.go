package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the gateway configuration.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
	// ConnectivityInterval is how often the backend root is probed.
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL, default=10s"`
}

type SessionConfig struct {
	// Driver selects session storage: memory, redis or mongo.
	Driver       string        `env:"SESSION_DRIVER, default=memory"`
	TTL          time.Duration `env:"SESSION_TTL,    default=12h"`
	RememberTTL  time.Duration `env:"REMEMBER_TTL,   default=720h"`
	CookieName   string        `env:"COOKIE_NAME,    default=dentedu_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dentedu"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// DevBackendConfig configures cmd/devbackend.
type DevBackendConfig struct {
	Port      string        `env:"DEV_PORT,   default=8000"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=2h"`

	// UsersDriver selects the user store: memory or mongo.
	UsersDriver string `env:"USERS_DRIVER, default=memory"`
	// SeedUsers is a comma-separated list of username:password:role[:email].
	SeedUsers       string  `env:"SEED_USERS"`
	LoginRatePerMin float64 `env:"LOGIN_RATE_PER_MIN, default=30"`

	Mongo MongoConfig
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads the gateway configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case "memory", "redis", "mongo":
	default:
		return fmt.Errorf("SESSION_DRIVER: unknown driver %q", c.Session.Driver)
	}
	if c.Session.TTL <= 0 || c.Session.RememberTTL <= 0 {
		return fmt.Errorf("SESSION_TTL and REMEMBER_TTL must be positive")
	}
	return nil
}

// LoadDevBackend reads the development backend configuration.
func LoadDevBackend() *DevBackendConfig {
	cfg, err := LoadDevBackendWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadDevBackendWith reads the development backend configuration through l.
func LoadDevBackendWith(ctx context.Context, l envconfig.Lookuper) (*DevBackendConfig, error) {
	var cfg DevBackendConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.UsersDriver {
	case "memory", "mongo":
	default:
		return nil, fmt.Errorf("USERS_DRIVER: unknown driver %q", cfg.UsersDriver)
	}
	return &cfg, nil
}
