package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the reference server configuration
type Config struct {
	Env      string
	LogLevel string

	// Server
	Port             string
	CORSAllowOrigins []string
	ReceiptDir       string
	Assistant        string

	// Database
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration
}

// ClientConfig holds the configuration of the spendly client.
type ClientConfig struct {
	Env      string
	LogLevel string

	APIURL         string
	Token          string
	TokenFile      string
	TokenScheme    string
	PageSize       int
	RequestTimeout time.Duration
	Locale         string
}

var appConfig *Config

// Load loads the server configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	loadDotEnv()

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Server
		Port:             getEnv("PORT", "8000"),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		ReceiptDir:       getEnv("RECEIPT_DIR", "media"),
		Assistant:        getEnv("ASSISTANT", ""),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "spendly.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "spendly"),
		DBPassword: getEnv("DB_PASSWORD", "spendly"),
		DBName:     getEnv("DB_NAME", "spendly"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	expDur, err := getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.JWTExpirationDur = expDur

	switch config.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q (use sqlite or postgres)", config.DBDriver)
	}

	switch config.Assistant {
	case "", "summary":
	default:
		return nil, fmt.Errorf("invalid ASSISTANT %q (use summary or leave empty)", config.Assistant)
	}

	appConfig = config
	return config, nil
}

// Get returns the server configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		config, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		appConfig = config
	}
	return appConfig
}

// Set replaces the server configuration. Tests use it to avoid reading the environment.
func Set(c *Config) {
	appConfig = c
}

// LoadClient loads the client configuration from the environment and an optional .env file.
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	config := &ClientConfig{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		APIURL:      strings.TrimRight(getEnv("SPENDLY_API_URL", "http://localhost:8000/api"), "/"),
		Token:       getEnv("SPENDLY_TOKEN", ""),
		TokenFile:   getEnv("SPENDLY_TOKEN_FILE", defaultTokenFile()),
		TokenScheme: getEnv("SPENDLY_TOKEN_SCHEME", "Bearer"),
		Locale:      getEnv("SPENDLY_LOCALE", "en-US"),
	}

	pageSize, err := getInt("SPENDLY_PAGE_SIZE", 50)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid SPENDLY_PAGE_SIZE %d: must be positive", pageSize)
	}
	config.PageSize = pageSize

	timeout, err := getDuration("REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	config.RequestTimeout = timeout

	return config, nil
}

func loadDotEnv() {
	// A missing .env file is fine; values then come from the environment or defaults.
	_ = godotenv.Load()
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spendly", "token")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
