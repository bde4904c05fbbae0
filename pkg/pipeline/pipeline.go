// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/cleaner"
	"github.com/retailworks/salesprep/pkg/config"
	"github.com/retailworks/salesprep/pkg/csvio"
	"github.com/retailworks/salesprep/pkg/model"
)

// WarehouseLoader is the loading contract the pipeline depends on
type WarehouseLoader interface {
	Load(ctx context.Context, customers, products, sales []model.Row) (int64, error)
}

// Pipeline runs the full preparation sequence for all three entities:
// read dirty CSV, dedup, apply the entity's rule list, write the prepared
// CSV, then full-refresh load the warehouse and report the differences.
// Entities are processed one at a time; there is no concurrent cleaning.
type Pipeline struct {
	cfg    *config.Config
	engine *cleaner.Engine
	loader WarehouseLoader
	logger *zap.Logger
	limits cleaner.Limits
}

// entitySpec binds one entity's files to its rule list
type entitySpec struct {
	name  string
	files config.EntityFiles
	rules []cleaner.ColumnRule
}

// New creates a pipeline. The rule limits are resolved once here, from
// defaults plus the optional override file.
func New(cfg *config.Config, loader WarehouseLoader, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if loader == nil {
		return nil, errors.New("loader cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	limits, err := cleaner.LoadLimits(cfg.RuleLimitsPath)
	if err != nil {
		return nil, err
	}

	engine, err := cleaner.NewEngine(logger.Named("cleaner"))
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:    cfg,
		engine: engine,
		loader: loader,
		logger: logger,
		limits: limits,
	}, nil
}

// Run executes the whole pipeline. Row-level drops are never errors; a
// structural failure marks its entity failed and the load is skipped
// ("partial success"). The returned summary always covers everything
// that ran; the error reports the first failure for the caller.
func (p *Pipeline) Run(ctx context.Context) (*model.RunSummary, error) {
	summary := model.NewRunSummary(uuid.New().String())
	defer summary.Complete()

	p.logger.Info("Starting preparation run", zap.String("run_id", summary.RunID))

	specs := []entitySpec{
		{cleaner.EntityCustomers, p.cfg.Customers, cleaner.CustomerRules(p.limits)},
		{cleaner.EntityProducts, p.cfg.Products, cleaner.ProductRules(p.limits)},
		{cleaner.EntitySales, p.cfg.Sales, cleaner.SaleRules(p.limits)},
	}

	cleaned := make(map[string][]model.Row, len(specs))
	for _, spec := range specs {
		result, rows := p.cleanEntity(spec)
		summary.AddEntityResult(result)
		cleaned[spec.name] = rows
	}

	if !summary.CleanedAll() {
		for _, r := range summary.Entities {
			if !r.Success {
				p.logger.Error("Cleaning failed, skipping warehouse load",
					zap.String("entity", r.Entity),
					zap.Error(r.StructuralErr))
				return summary, fmt.Errorf("cleaning %s failed: %w", r.Entity, r.StructuralErr)
			}
		}
	}

	summary.LoadAttempted = true
	rowsLoaded, err := p.loader.Load(ctx,
		cleaned[cleaner.EntityCustomers],
		cleaned[cleaner.EntityProducts],
		cleaned[cleaner.EntitySales])
	if err != nil {
		summary.LoadErr = err
		p.logger.Error("Warehouse load failed, state rolled back", zap.Error(err))
		return summary, fmt.Errorf("warehouse load failed: %w", err)
	}
	summary.RowsLoaded = rowsLoaded

	p.logger.Info("Preparation run complete",
		zap.String("run_id", summary.RunID),
		zap.Int64("rows_loaded", rowsLoaded))
	return summary, nil
}

// cleanEntity runs dedup and the rule list for one entity and writes the
// prepared CSV. Returns the per-entity result and the surviving rows.
func (p *Pipeline) cleanEntity(spec entitySpec) (*model.EntityResult, []model.Row) {
	result := model.NewEntityResult(spec.name)
	log := p.logger.With(zap.String("entity", spec.name))

	inputPath := p.cfg.InputPath(spec.files)
	header, records, err := csvio.ReadFile(inputPath)
	if err != nil {
		result.StructuralErr = err
		result.Complete(false)
		return result, nil
	}
	result.RowsRead = len(records)
	log.Info("Loaded dirty data",
		zap.String("path", inputPath),
		zap.Int("rows", len(records)))

	deduped, removed := cleaner.Deduplicate(records)
	result.Duplicates = removed

	rows, drops, err := p.engine.Apply(spec.name, header, deduped, spec.rules)
	if err != nil {
		result.StructuralErr = err
		result.Complete(false)
		return result, nil
	}
	result.RuleDrops = drops
	result.RowsKept = len(rows)

	outputPath := p.cfg.OutputPath(spec.files)
	if err := csvio.WriteFile(outputPath, header, rows); err != nil {
		result.StructuralErr = err
		result.Complete(false)
		return result, nil
	}
	result.RowsWritten = len(rows)

	log.Info("Entity cleaned",
		zap.Int("rows_read", result.RowsRead),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("rows_kept", result.RowsKept),
		zap.Int("rows_dropped", result.TotalDropped()),
		zap.String("output", outputPath))

	result.Complete(true)
	return result, rows
}
