package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Storage backend selectors.
const (
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// StorageBackend selects the persistence gateway: redis or mongo.
	StorageBackend string `env:"STORAGE_BACKEND, default=redis"`
	// PersistWorkers sizes the async write queue; 0 disables async writes.
	PersistWorkers int `env:"PERSIST_WORKERS, default=4"`

	Redis    RedisConfig
	Mongo    MongoConfig
	Catalog  CatalogConfig
	Reminder ReminderConfig
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR, default=localhost:6379"`
	DB        int    `env:"REDIS_DB,   default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=bowlapp:"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bowlapp"`
}

type CatalogConfig struct {
	// BaseURL of the remote catalog; empty serves the bundled catalog.
	BaseURL        string `env:"CATALOG_URL"`
	TimeoutSeconds int    `env:"CATALOG_TIMEOUT_SECONDS, default=10"`
}

type ReminderConfig struct {
	Enabled bool `env:"REMINDER_ENABLED, default=true"`
	// Hour of day (local time) the daily reminder fires.
	Hour int `env:"REMINDER_HOUR, default=12"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
