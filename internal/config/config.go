package config

import (
	"errors"
	"fmt"
	"io/fs"

	"go-inventory-catalog/pkg/database"
	"go-inventory-catalog/pkg/jwt"
	"go-inventory-catalog/pkg/rabbitmq"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Database database.Config
	JWT      jwt.Config
	Log      Log
	Upload   Upload
	Seed     Seed
	RabbitMQ rabbitmq.Config
}

type App struct {
	Name string `env:"APP_NAME" envDefault:"Inventory Catalog v1.0"`
}

// Seed is the master account created on first boot.
type Seed struct {
	Email    string `env:"SEED_MASTER_EMAIL" envDefault:"admin@example.com"`
	Password string `env:"SEED_MASTER_PASSWORD" envDefault:"admin123"`
	Name     string `env:"SEED_MASTER_NAME" envDefault:"Master Administrator"`
}

// New reads configuration from environment variables and unmarshals them
// into a struct of type T.
func New[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Load reads the optional .env files and then the environment. A missing
// .env file is not an error; variables already set take precedence.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := New[Config]()
	if err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}
