package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	API         APIConfig
	Credentials CredentialsConfig
	Backend     BackendConfig
	Mongo       MongoConfig
	Redis       RedisConfig
}

// APIConfig points the client core at a backend.
type APIConfig struct {
	URL     string        `env:"PROADMIN_API_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"PROADMIN_TIMEOUT, default=15s"`
}

// BackendConfig drives the reference backend in cmd/proadmin-backend.
type BackendConfig struct {
	Port          string        `env:"PORT,           default=8080"`
	SessionSecret string        `env:"SESSION_SECRET, default=dev-session-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	OwnerEmail    string        `env:"OWNER_EMAIL,    default=admin@proelectric.com"`
	OwnerPassword string        `env:"OWNER_PASSWORD, default=admin"`
}

// CredentialsConfig lets the CLI sign in without a password on the
// command line.
type CredentialsConfig struct {
	User     string `env:"PROADMIN_USER"`
	Password string `env:"PROADMIN_PASSWORD"`
}

// MongoConfig is optional; an empty URI keeps the backend in memory.
type MongoConfig struct {
	URI         string        `env:"MONGO_URI"`
	Database    string        `env:"MONGO_DB,            default=proadmin"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=20"`
	AppName     string        `env:"MONGO_APP_NAME,      default=proadmin-backend"`
}

// RedisConfig is optional; an empty address keeps revocations in memory.
type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB,          default=0"`
	Timeout    time.Duration `env:"REDIS_TIMEOUT,     default=3s"`
	PoolSize   int           `env:"REDIS_POOL_SIZE,   default=10"`
	ClientName string        `env:"REDIS_CLIENT_NAME, default=proadmin-backend"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
