package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port" validate:"required"`
	Environment    string        `mapstructure:"environment" validate:"oneof=development staging production test"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// LLMConfig holds text generation provider configuration
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"oneof=openai gemini"`
	APIKey      string  `mapstructure:"api_key"` // may be empty; requests then fail as not configured
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	BaseURL     string  `mapstructure:"base_url" validate:"omitempty,url"`
}

// LedgerConfig holds credits storage configuration
type LedgerConfig struct {
	Type           string `mapstructure:"type" validate:"oneof=memory postgres"`
	DSN            string `mapstructure:"dsn"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	InitialCredits int    `mapstructure:"initial_credits" validate:"gte=0"`
}

// AuthConfig holds session token verification settings
type AuthConfig struct {
	SupabaseJWTSecret string `mapstructure:"supabase_jwt_secret" validate:"required"`
	Issuer            string `mapstructure:"issuer"`
	Audience          string `mapstructure:"audience"`
}

// IsProduction reports whether the server runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/presenteperfeito/")

	// PRESENTE_LLM_API_KEY -> llm.api_key
	v.SetEnvPrefix("PRESENTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout", "90s")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// LLM defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.8)
	v.SetDefault("llm.base_url", "")

	// Ledger defaults
	v.SetDefault("ledger.type", "memory")
	v.SetDefault("ledger.dsn", "")
	v.SetDefault("ledger.auto_migrate", false)
	v.SetDefault("ledger.initial_credits", 2)

	// Auth defaults
	v.SetDefault("auth.supabase_jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")
}

var configValidator = validator.New()

// validate validates the configuration
func validate(config *Config) error {
	if err := configValidator.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return describeFieldError(fieldErrs[0])
		}
		return err
	}

	if config.Ledger.Type == "postgres" && config.Ledger.DSN == "" {
		return fmt.Errorf("ledger DSN is required when ledger type is 'postgres' (set PRESENTE_LEDGER_DSN)")
	}

	return nil
}

func describeFieldError(fe validator.FieldError) error {
	switch fe.StructNamespace() {
	case "Config.Auth.SupabaseJWTSecret":
		return fmt.Errorf("Supabase JWT secret is required (set PRESENTE_AUTH_SUPABASE_JWT_SECRET)")
	case "Config.LLM.Provider":
		return fmt.Errorf("llm provider must be 'openai' or 'gemini', got: %v", fe.Value())
	case "Config.Ledger.Type":
		return fmt.Errorf("ledger type must be 'memory' or 'postgres', got: %v", fe.Value())
	}
	return fmt.Errorf("%s failed %q validation (value: %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
