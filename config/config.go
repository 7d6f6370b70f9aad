package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MongoDatabaseName is fixed; deployments choose the server, not the database.
const MongoDatabaseName = "tododb"

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	AppEnv          string        `env:"APP_ENV" env-default:"development"`
	AppPort         string        `env:"APP_PORT" env-default:"8080"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`

	StoreDriver string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI    string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`

	DBHost         string `env:"DB_HOST" env-default:"localhost"`
	DBPort         string `env:"DB_PORT" env-default:"5432"`
	DBUser         string `env:"DB_USER" env-default:"todo"`
	DBPassword     string `env:"DB_PASSWORD" env-default:"todo"`
	DBName         string `env:"DB_NAME" env-default:"tododb"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	SQLitePath     string `env:"SQLITE_PATH" env-default:"todos.db"`

	NatsURL           string `env:"NATS_URL" env-default:""`
	NatsSubjectPrefix string `env:"NATS_SUBJECT_PREFIX" env-default:"todos"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	log.Println("Loading configuration...")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case StoreMongo, StorePostgres, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s; got %q",
			StoreMongo, StorePostgres, StoreSQLite, cfg.StoreDriver)
	}

	return cfg, nil
}

// Origins splits AllowedOrigins into its comma separated entries.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// PostgresDSN builds the connection string for the relational store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}

// Description lists the configuration cleanenv understands, for --help output.
func Description() string {
	var cfg Config
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return ""
	}
	return text
}
