// pkg/warehouse/connector.go
package warehouse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/config"
)

// Open connects to the configured warehouse, applies connection pool
// settings and verifies the connection with a ping.
func Open(ctx context.Context, cfg *config.WarehouseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	if cfg.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create warehouse directory: %w", err)
		}
	}

	logger.Info("Connecting to warehouse",
		zap.String("driver", cfg.Driver),
		zap.String("target", targetName(cfg)))

	db, err := sqlx.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize warehouse connection: %w", err)
	}

	applyConnectionSettings(db, cfg)

	if err := pingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	logConnectionStats(logger, targetName(cfg), db)
	return db, nil
}

// targetName returns a loggable identifier for the warehouse
func targetName(cfg *config.WarehouseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}

// applyConnectionSettings configures database connection pool settings
func applyConnectionSettings(db *sqlx.DB, cfg *config.WarehouseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// pingWithTimeout attempts to ping the warehouse with a timeout
func pingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// logConnectionStats logs connection pool statistics
func logConnectionStats(logger *zap.Logger, name string, db *sqlx.DB) {
	stats := db.Stats()
	logger.Debug("Connection pool stats",
		zap.String("database", name),
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int("max_open", stats.MaxOpenConnections))
}
