package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Quotes   QuoteConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// SecurityConfig holds data-protection configuration. NoteEncryptionKey
// must be 32 bytes (AES-256) when set; empty disables note encryption.
type SecurityConfig struct {
	NoteEncryptionKey string
}

// QuoteConfig holds configuration for the daily inspiration quote.
// When an OpenAI API key is present the quote of the day is generated;
// otherwise a built-in rotation is used.
type QuoteConfig struct {
	OpenAIAPIKey string
	OpenAIModel  string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.connmaxlifetime", 5*time.Minute)

	v.SetDefault("quotes.openaimodel", "gpt-4o-mini")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	v.BindEnv("database.url", "DATABASE_URL")

	v.BindEnv("security.noteencryptionkey", "NOTE_ENCRYPTION_KEY")

	v.BindEnv("quotes.openaiapikey", "OPENAI_API_KEY")
	v.BindEnv("quotes.openaimodel", "OPENAI_QUOTE_MODEL")

	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}

	if key := c.Security.NoteEncryptionKey; key != "" && len(key) != 32 {
		return fmt.Errorf("security.noteencryptionkey must be exactly 32 bytes, got %d", len(key))
	}

	return nil
}
