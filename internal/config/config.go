package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendFile   = "file"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Auth   AuthConfig
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port int
}

// StoreConfig holds the persistence configuration
type StoreConfig struct {
	Backend    string // "file", "sql" or "memory"
	DataDir    string // file backend: directory holding the JSON collections
	Driver     string // sql backend: "sqlite" or "postgres"
	SQLitePath string
	Postgres   PostgresConfig
}

// PostgresConfig holds the PostgreSQL connection configuration
type PostgresConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds the authentication configuration.
// SessionTTL of zero means sessions never expire, which matches the
// behavior the frontend expects; expiry is opt-in.
type AuthConfig struct {
	SessionTTL time.Duration
}

// GetDSN returns the database connection string
func (c *PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// LoadConfig loads the configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			Backend:    getEnv("STORE_BACKEND", BackendFile),
			DataDir:    getEnv("DATA_DIR", "./data"),
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/app.db"),
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvAsInt("DB_PORT", 5432),
				Username: getEnv("DB_USERNAME", "postgres"),
				Password: getEnv("DB_PASSWORD", "password"),
				DBName:   getEnv("DB_NAME", "baitodiary"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		Auth: AuthConfig{
			SessionTTL: getEnvAsDuration("SESSION_TTL", 0),
		},
	}
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
