package config

import (
	"errors"
	"fmt"
)

// ErrResultsDBDisabled is returned when no run-history database is configured
var ErrResultsDBDisabled = errors.New("run-history database not configured")

// PostgresConfig holds configuration for the run-history PostgreSQL database
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	// Schema, when set, becomes the connection's search_path
	Schema string
}

// LoadPostgresConfig loads the run-history database configuration.
// An unset RESULTS_DB_HOST disables recording and yields ErrResultsDBDisabled.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("RESULTS_DB_USER"),
		Password: getenv("RESULTS_DB_PASSWORD"),
		Database: getenv("RESULTS_DB_NAME"),
		Host:     getenv("RESULTS_DB_HOST"),
		Schema:   getenv("RESULTS_DB_SCHEMA"),
	}

	if config.Host == "" {
		return nil, ErrResultsDBDisabled
	}

	// A host without credentials is a half-configured environment, not an opt-out
	if config.User == "" {
		return nil, fmt.Errorf("RESULTS_DB_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("RESULTS_DB_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("RESULTS_DB_NAME is required")
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	conn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
	if c.Schema != "" {
		conn += " search_path=" + c.Schema
	}
	return conn
}
