// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// EntityFiles names the input and output CSV files for one entity
type EntityFiles struct {
	Input  string
	Output string
}

// Config represents the application configuration
type Config struct {
	// Data locations
	DirtyDataDir   string
	PreparedDir    string
	ReportPath     string
	RuleLimitsPath string // optional YAML override for rule limits

	Customers EntityFiles
	Products  EntityFiles
	Sales     EntityFiles

	// Warehouse connection
	Warehouse *WarehouseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dataDir := getEnv("DATA_DIR", "data")

	cfg := &Config{
		DirtyDataDir:   getEnv("DIRTY_DATA_DIR", filepath.Join(dataDir, "dirty_data")),
		PreparedDir:    getEnv("PREPARED_DIR", filepath.Join(dataDir, "prepared")),
		ReportPath:     getEnv("REPORT_PATH", filepath.Join(dataDir, "processed", "record_differences.txt")),
		RuleLimitsPath: getEnv("RULE_LIMITS_PATH", ""),

		Customers: EntityFiles{
			Input:  getEnv("CUSTOMERS_INPUT", "dirty_customers_data.csv"),
			Output: getEnv("CUSTOMERS_OUTPUT", "customers_data_prepared.csv"),
		},
		Products: EntityFiles{
			Input:  getEnv("PRODUCTS_INPUT", "dirty_products_data.csv"),
			Output: getEnv("PRODUCTS_OUTPUT", "products_data_prepared.csv"),
		},
		Sales: EntityFiles{
			Input:  getEnv("SALES_INPUT", "dirty_sales_data.csv"),
			Output: getEnv("SALES_OUTPUT", "sales_data_prepared.csv"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	whConfig, err := LoadWarehouseConfig()
	if err != nil {
		return nil, errors.New("failed to load warehouse configuration: " + err.Error())
	}
	cfg.Warehouse = whConfig

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Warehouse == nil {
		return errors.New("warehouse configuration is required")
	}
	if c.DirtyDataDir == "" {
		return errors.New("dirty data directory is required")
	}
	if c.PreparedDir == "" {
		return errors.New("prepared data directory is required")
	}
	return nil
}

// InputPath returns the full path of an entity's dirty input file
func (c *Config) InputPath(files EntityFiles) string {
	return filepath.Join(c.DirtyDataDir, files.Input)
}

// OutputPath returns the full path of an entity's prepared output file
func (c *Config) OutputPath(files EntityFiles) string {
	return filepath.Join(c.PreparedDir, files.Output)
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
