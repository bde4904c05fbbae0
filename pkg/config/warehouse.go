// pkg/config/warehouse.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Warehouse driver names accepted by WAREHOUSE_DRIVER
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// WarehouseConfig holds connection parameters for the relational warehouse.
// The default is a local SQLite file; a PostgreSQL warehouse is selected
// by setting WAREHOUSE_DRIVER=postgres.
type WarehouseConfig struct {
	Driver string

	// SQLite
	Path string

	// PostgreSQL
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadWarehouseConfig loads warehouse configuration from environment variables
func LoadWarehouseConfig() (*WarehouseConfig, error) {
	driver := getEnv("WAREHOUSE_DRIVER", DriverSQLite)

	cfg := &WarehouseConfig{
		Driver: driver,

		MaxOpenConns:    getEnvAsInt("WAREHOUSE_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    getEnvAsInt("WAREHOUSE_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getEnvAsDuration("WAREHOUSE_CONN_MAX_LIFETIME_SECONDS", 1800),
		ConnMaxIdleTime: getEnvAsDuration("WAREHOUSE_CONN_MAX_IDLE_TIME_SECONDS", 600),
	}

	switch driver {
	case DriverSQLite:
		cfg.Path = getEnv("WAREHOUSE_PATH", "data/dw/smart_sales.db")

	case DriverPostgres:
		user := os.Getenv("WAREHOUSE_PG_USER")
		if user == "" {
			return nil, errors.New("WAREHOUSE_PG_USER environment variable is required")
		}
		password := os.Getenv("WAREHOUSE_PG_PASSWORD")
		if password == "" {
			return nil, errors.New("WAREHOUSE_PG_PASSWORD environment variable is required")
		}
		database := os.Getenv("WAREHOUSE_PG_DB")
		if database == "" {
			return nil, errors.New("WAREHOUSE_PG_DB environment variable is required")
		}

		cfg.Host = getEnv("WAREHOUSE_PG_HOST", "localhost")
		cfg.Port = getEnvAsInt("WAREHOUSE_PG_PORT", 5432)
		cfg.User = user
		cfg.Password = password
		cfg.Database = database
		cfg.SSLMode = getEnv("WAREHOUSE_PG_SSLMODE", "disable")

	default:
		return nil, fmt.Errorf("unsupported warehouse driver: %s", driver)
	}

	return cfg, nil
}

// ConnectionString returns a DSN for the configured driver
func (c *WarehouseConfig) ConnectionString() string {
	if c.Driver == DriverSQLite {
		// Enforce the sales foreign keys at insert time
		return c.Path + "?_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
