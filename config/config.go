package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"` // 0 = no outbound pacing
	RequireAPIKey     bool   `mapstructure:"require_api_key"`     // fail at startup instead of per request
}

// UploadConfig bounds accepted images
type UploadConfig struct {
	MaxBytes         int64    `mapstructure:"max_bytes"`
	AllowedMIMETypes []string `mapstructure:"allowed_mime_types"` // empty = any
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	StrictSchema bool          `mapstructure:"strict_schema"`
	Timeout      time.Duration `mapstructure:"timeout"` // 0 = request context only
}

// legacyAPIKeyEnv is the variable earlier deployments used for the Gemini key
const legacyAPIKeyEnv = "GENERATIVE_AI_API_KEY"

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/foodlens/")

	// Environment variable settings: server.port -> FOODLENS_SERVER_PORT
	v.SetEnvPrefix("FOODLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "FOODLENS_GEMINI_API_KEY", legacyAPIKeyEnv); err != nil {
		return nil, fmt.Errorf("error binding env: %w", err)
	}

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

	// A whitespace-only key counts as no key
	config.Gemini.APIKey = strings.TrimSpace(config.Gemini.APIKey)

	// Comma-separated env values arrive as a single element
	config.Server.AllowedOrigins = splitList(config.Server.AllowedOrigins)
	config.Upload.AllowedMIMETypes = splitList(config.Upload.AllowedMIMETypes)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if present.
// Variables that are already set win over the file.
func loadEnvFile() error {
	err := godotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.0-flash-exp")
	v.SetDefault("gemini.requests_per_minute", 0)
	v.SetDefault("gemini.require_api_key", false)

	// Upload defaults
	v.SetDefault("upload.max_bytes", 10<<20) // 10 MiB
	v.SetDefault("upload.allowed_mime_types", []string{
		"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif", "image/gif",
	})

	// Analysis defaults
	v.SetDefault("analysis.strict_schema", false)
	v.SetDefault("analysis.timeout", "0s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Gemini.RequireAPIKey && strings.TrimSpace(config.Gemini.APIKey) == "" {
		return fmt.Errorf("Gemini API key is required (set FOODLENS_GEMINI_API_KEY or %s)", legacyAPIKeyEnv)
	}

	if strings.TrimSpace(config.Gemini.Model) == "" {
		return fmt.Errorf("Gemini model must not be empty")
	}

	if config.Gemini.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute must be >= 0, got: %d", config.Gemini.RequestsPerMinute)
	}

	if config.Upload.MaxBytes < 0 {
		return fmt.Errorf("upload max bytes must be >= 0, got: %d", config.Upload.MaxBytes)
	}

	if config.Analysis.Timeout < 0 {
		return fmt.Errorf("analysis timeout must be >= 0, got: %s", config.Analysis.Timeout)
	}

	return nil
}

// splitList flattens comma-separated entries and drops blanks
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
