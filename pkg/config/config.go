package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Storage struct {
		Driver string `env:"STORAGE_DRIVER" env-default:"postgres" env-description:"postgres or memory"`
	}
	Status struct {
		PurgeInterval          time.Duration `env:"STATUS_PURGE_INTERVAL" env-default:"15m"`
		PersistRetries         uint64        `env:"STATUS_PERSIST_RETRIES" env-default:"3"`
		PersistInitialInterval time.Duration `env:"STATUS_PERSIST_INITIAL_INTERVAL" env-default:"500ms"`
		PersistMaxInterval     time.Duration `env:"STATUS_PERSIST_MAX_INTERVAL" env-default:"5s"`
	}
	Viewer struct {
		ID        string `env:"VIEWER_ID" env-required:"true"`
		Name      string `env:"VIEWER_NAME"`
		AvatarRef string `env:"VIEWER_AVATAR_REF"`
	}
}

// GetDSN returns the libpq style connection string used by goose and the migrate tool.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL returns the postgres:// form accepted by pgxpool.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
