package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"debatecamp/internal/auth"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Драйверы хранилища отзывов
	DriverDocument = "document"
	DriverDatabase = "database"
)

type Config struct {
	Server struct {
		Host string `yaml:"host" env:"SERVER_HOST"`
		Port int    `yaml:"port" env:"SERVER_PORT"`
		Env  string `yaml:"env" env:"SERVER_ENV"`

		AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	} `yaml:"server"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"`         // document, database
		Type      string `yaml:"type" env:"STORAGE_TYPE"`             // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path" env:"DATA_DIR"`            // For local storage
		BaseURL   string `yaml:"base_url" env:"STORAGE_BASE_URL"`     // Public URL base
		Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET"`         // For S3/R2
		Region    string `yaml:"region" env:"STORAGE_REGION"`         // For S3
		AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"` // For S3/R2
		SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"` // For S3/R2
		Endpoint  string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`     // For R2 or custom S3
		UseSSL    bool   `yaml:"use_ssl" env:"STORAGE_USE_SSL"`
	} `yaml:"storage"`

	Database struct {
		Dialect string `yaml:"dialect" env:"DATABASE_DIALECT"` // postgres, sqlite
		DSN     string `yaml:"url" env:"DATABASE_URL"`
	} `yaml:"database"`

	Reviews struct {
		Document string `yaml:"document" env:"REVIEWS_DOCUMENT"`
	} `yaml:"reviews"`

	Admin struct {
		Key             string `yaml:"key" env:"ADMIN_KEY"`
		PasswordHash    string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
		JWTSecret       string `yaml:"jwt_secret" env:"JWT_SECRET"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"ADMIN_TOKEN_TTL_MINUTES"`
		Enforce         bool   `yaml:"enforce" env:"ADMIN_ENFORCE"`
	} `yaml:"admin"`

	Email struct {
		SMTPHost       string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort       int    `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUsername   string `yaml:"smtp_user" env:"SMTP_USER"`
		SMTPPassword   string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		FromEmail      string `yaml:"from_email" env:"EMAIL_FROM"`
		ModeratorEmail string `yaml:"moderator_email" env:"MODERATOR_EMAIL"`
	} `yaml:"email"`
}

var AppConfig *Config

// Default возвращает конфиг со значениями по умолчанию
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = EnvDevelopment

	cfg.Storage.Driver = DriverDocument
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./data"

	cfg.Database.Dialect = "postgres"

	cfg.Reviews.Document = "reviews.json"

	cfg.Admin.TokenTTLMinutes = 12 * 60

	cfg.Email.SMTPPort = 587
	return &cfg
}

// Load собирает конфиг: значения по умолчанию, затем YAML-файл (если он есть),
// затем .env и переменные окружения.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		f, err := os.Open(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Файл необязателен, работаем на значениях по умолчанию и окружении
		case err != nil:
			return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
		default:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Server.Env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return fmt.Errorf("unknown server env %q", c.Server.Env)
	}

	switch c.Storage.Driver {
	case DriverDocument:
		if c.Reviews.Document == "" {
			return errors.New("reviews.document must not be empty")
		}
	case DriverDatabase:
		if c.Database.DSN == "" {
			return errors.New("database.url is required for the database storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Admin.PasswordHash != "" && !auth.IsPasswordHash(c.Admin.PasswordHash) {
		return errors.New("admin.password_hash is not a bcrypt hash")
	}

	if c.AdminCheckEnforced() && c.Admin.Key == "" && c.Admin.JWTSecret == "" {
		return errors.New("admin.key or admin.jwt_secret is required when the admin check is enforced")
	}
	return nil
}

// IsProduction - боевой режим
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// AdminCheckEnforced - проверять ли ключ администратора.
// Вне production проверка отключена, если явно не включена admin.enforce.
func (c *Config) AdminCheckEnforced() bool {
	return c.IsProduction() || c.Admin.Enforce
}

// LoadConfig загружает глобальный конфиг из CONFIG_PATH (по умолчанию config/config.yaml)
func LoadConfig() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			AppConfig = Default()
		}
	}
	return AppConfig
}
