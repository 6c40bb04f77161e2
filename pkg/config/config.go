package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the escotech API.
// Values come from a YAML file (config.yaml) with environment variable
// overrides. Secrets (passwords, keys) must only come from environment
// variables.
type Config struct {
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"5000"`
	Env      string `yaml:"env" env:"NODE_ENV" env-default:"development"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// FrontendURL is the allowed CORS origin for the marketing site.
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`

	// UploadsDir is served at /uploads for legacy locally stored images.
	UploadsDir string `yaml:"uploads_dir" env:"UPLOADS_DIR" env-default:"./uploads"`

	// MigrationsPath is the directory containing golang-migrate SQL files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`

	// JWTSecret signs admin tokens. Server refuses to start without it.
	JWTSecret string `yaml:"-" env:"JWT_SECRET"`

	Database   DatabaseConfig   `yaml:"database"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	SMTP       SMTPConfig       `yaml:"smtp"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"escotech"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"escotech"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
}

// CloudinaryConfig holds credentials for the media storage provider.
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret string `yaml:"-" env:"CLOUDINARY_API_SECRET"` // Secret - not in YAML
}

// SMTPConfig holds settings for the contact notification mailer.
type SMTPConfig struct {
	Host       string `yaml:"host" env:"SMTP_HOST"`
	Port       int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User       string `yaml:"user" env:"SMTP_USER"`
	Password   string `yaml:"-" env:"SMTP_PASS"` // Secret - not in YAML
	AdminEmail string `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:"info@escotech.rw"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. The version parameter is injected at build time.
func Load(path, version string) (*Config, error) {
	cfg := &Config{Version: version}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// IsProduction reports whether the server runs in production mode.
// Non-production responses may carry error detail in 500 envelopes.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
