// cmd/salesprep/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/config"
	"github.com/retailworks/salesprep/pkg/logging"
	"github.com/retailworks/salesprep/pkg/pipeline"
	"github.com/retailworks/salesprep/pkg/report"
	"github.com/retailworks/salesprep/pkg/warehouse"
)

// Exit codes distinguish how far the run got
const (
	exitOK           = 0
	exitCleanFailure = 1 // partial success: cleaning failed, load not attempted
	exitLoadFailure  = 2 // load attempted and rolled back
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitCleanFailure
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return exitCleanFailure
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := warehouse.Open(ctx, cfg.Warehouse, logger.Named("warehouse"))
	if err != nil {
		logger.Error("Failed to open warehouse", zap.Error(err))
		return exitLoadFailure
	}
	defer db.Close()

	if err := warehouse.EnsureSchema(ctx, db); err != nil {
		logger.Error("Failed to ensure warehouse schema", zap.Error(err))
		return exitLoadFailure
	}

	loader, err := warehouse.NewLoader(db, logger.Named("loader"))
	if err != nil {
		logger.Error("Failed to create loader", zap.Error(err))
		return exitLoadFailure
	}

	p, err := pipeline.New(cfg, loader, logger.Named("pipeline"))
	if err != nil {
		logger.Error("Failed to create pipeline", zap.Error(err))
		return exitCleanFailure
	}

	summary, runErr := p.Run(ctx)

	if len(summary.Entities) > 0 {
		if err := report.WriteDifferencesFile(cfg.ReportPath, summary.Entities); err != nil {
			logger.Warn("Failed to write differences report", zap.Error(err))
		} else {
			logger.Info("Differences report written", zap.String("path", cfg.ReportPath))
		}
	}

	switch {
	case runErr == nil:
		logger.Info("Run finished with full success", zap.String("run_id", summary.RunID))
		return exitOK
	case summary.LoadAttempted:
		logger.Error("Run finished with load failure", zap.Error(runErr))
		return exitLoadFailure
	default:
		logger.Error("Run finished with partial success", zap.Error(runErr))
		return exitCleanFailure
	}
}
