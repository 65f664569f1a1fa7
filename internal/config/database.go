package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

func init() {
	// sqlx does not know the modernc driver name; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SetupDatabase initializes the database connection for the SQL backend
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.Store.Postgres.GetDSN())
	case "sqlite":
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "." && dir != "" {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
			}
		}
		db, err = sqlx.Connect("sqlite", cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings. SQLite gets a single connection so
	// writers are serialized at the pool level.
	if cfg.Store.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database. The DDL is
// kept to the subset both SQLite and PostgreSQL accept.
func createTables(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			salt VARCHAR(64) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS diaries (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date VARCHAR(10) NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS work_days (
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date VARCHAR(10) NOT NULL,
			hours DOUBLE PRECISION NOT NULL,
			wage DOUBLE PRECISION NOT NULL,
			memo TEXT NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			user_id VARCHAR(36) PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			payment_type VARCHAR(10) NOT NULL,
			hourly_wage DOUBLE PRECISION NOT NULL,
			daily_wage DOUBLE PRECISION NOT NULL,
			default_hours DOUBLE PRECISION NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
