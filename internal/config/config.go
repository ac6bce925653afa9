package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"memory"`
	DBDSN           string        `env:"DB_DSN"`
	MigrateOnStart  bool          `env:"MIGRATIONS_ON_START" envDefault:"true"`
	SupabaseURL     string        `env:"SUPABASE_URL"`
	SupabaseKey     string        `env:"SUPABASE_KEY"`
	SupabaseTimeout time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"10s"`

	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminAPIToken     string        `env:"ADMIN_API_TOKEN"`
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"12h"`

	TelegramToken       string `env:"TELEGRAM_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`

	SendGridAPIKey  string `env:"SENDGRID_API_KEY"`
	NotifyEmailFrom string `env:"NOTIFY_EMAIL_FROM" envDefault:"noreply@example.sg"`
	NotifyEmailTo   string `env:"NOTIFY_EMAIL_TO"`

	MatchingFunctionURL string        `env:"MATCHING_FUNCTION_URL"`
	MatchingInterval    time.Duration `env:"MATCHING_INTERVAL" envDefault:"1m"`

	SubmitRatePerMin int `env:"SUBMIT_RATE_PER_MIN" envDefault:"10"`
	LoginRatePerMin  int `env:"LOGIN_RATE_PER_MIN" envDefault:"5"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse decodes and validates the current environment without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if !c.IsDevelopment() {
		if c.AdminPassword == "" && c.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required outside development")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required outside development")
		}
	}

	if c.SubmitRatePerMin <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_MIN must be positive")
	}
	if c.LoginRatePerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be positive")
	}
	if c.MatchingInterval <= 0 {
		return fmt.Errorf("MATCHING_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// TelegramEnabled reports whether the bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.NotifyEmailTo != ""
}
