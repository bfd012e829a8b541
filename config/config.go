package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// Database
	DBDriver   string `mapstructure:"DB_DRIVER"` // mysql, sqlite
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPath     string `mapstructure:"DB_PATH"`

	// Redis
	RedisEnabled            bool   `mapstructure:"REDIS_ENABLED"`
	RedisHost               string `mapstructure:"REDIS_HOST"`
	RedisPort               string `mapstructure:"REDIS_PORT"`
	RedisPassword           string `mapstructure:"REDIS_PASSWORD"`
	RedisDB                 int    `mapstructure:"REDIS_DB"`
	ProgressCacheTTLSeconds int    `mapstructure:"PROGRESS_CACHE_TTL_SECONDS"`

	// Text generation (any OpenAI compatible endpoint)
	LLMAPIKey      string  `mapstructure:"LLM_API_KEY"`
	LLMAPIEndpoint string  `mapstructure:"LLM_API_ENDPOINT"`
	LLMModel       string  `mapstructure:"LLM_MODEL"`
	LLMTemperature float64 `mapstructure:"LLM_TEMPERATURE"`
	LLMMaxTokens   int     `mapstructure:"LLM_MAX_TOKENS"`

	// JWT
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// Registers POST /api/v1/auth/test-token outside production
	EnableTestToken bool `mapstructure:"ENABLE_TEST_TOKEN"`

	// Shared token for /metrics, open when empty
	InternalAuthToken string `mapstructure:"INTERNAL_AUTH_TOKEN"`

	// Logging
	LogDir   string `mapstructure:"LOG_DIR"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"ENVIRONMENT":                "development",
	"SERVER_PORT":                "8080",
	"DB_DRIVER":                  "mysql",
	"DB_HOST":                    "localhost",
	"DB_PORT":                    "3306",
	"DB_USER":                    "root",
	"DB_PASSWORD":                "",
	"DB_NAME":                    "mindwell",
	"DB_PATH":                    "mindwell.db",
	"REDIS_ENABLED":              false,
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"PROGRESS_CACHE_TTL_SECONDS": 60,
	"LLM_API_KEY":                "",
	"LLM_API_ENDPOINT":           "https://api.openai.com/v1",
	"LLM_MODEL":                  "gpt-3.5-turbo",
	"LLM_TEMPERATURE":            0.7,
	"LLM_MAX_TOKENS":             300,
	"JWT_SECRET":                 "",
	"ENABLE_TEST_TOKEN":          false,
	"INTERNAL_AUTH_TOKEN":        "",
	"LOG_DIR":                    "logs",
	"LOG_LEVEL":                  "info",
}

// LoadConfig loads configuration from a .env file in path and the environment.
// Environment variables take precedence over the file.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// AutomaticEnv only resolves keys viper already knows about, so every key
	// gets a default.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		// a missing file is fine, values then come from the environment
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, config.Validate()
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q, must be one of: mysql, sqlite", c.DBDriver)
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens)
	}
	if c.ProgressCacheTTLSeconds < 0 {
		return fmt.Errorf("PROGRESS_CACHE_TTL_SECONDS must not be negative, got %d", c.ProgressCacheTTLSeconds)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetDBConnString returns the MySQL DSN
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString returns the Redis address
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// ProgressCacheTTL returns how long progress responses stay cached
func (c *Config) ProgressCacheTTL() time.Duration {
	return time.Duration(c.ProgressCacheTTLSeconds) * time.Second
}
