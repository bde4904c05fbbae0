// pkg/model/results.go
package model

import "time"

// RuleDrop records how many rows a single rule removed.
// Order follows rule declaration order.
type RuleDrop struct {
	Rule  string
	Count int
}

// EntityResult represents the result of cleaning one entity's dataset
type EntityResult struct {
	Entity        string
	Success       bool
	RowsRead      int
	Duplicates    int
	RuleDrops     []RuleDrop
	RowsKept      int
	RowsWritten   int
	StructuralErr error
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// NewEntityResult initializes a result for an entity cleaning run
func NewEntityResult(entity string) *EntityResult {
	return &EntityResult{
		Entity:    entity,
		StartTime: time.Now(),
	}
}

// Complete marks the entity run as complete and calculates duration
func (r *EntityResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// TotalDropped returns duplicates plus every per-rule drop
func (r *EntityResult) TotalDropped() int {
	total := r.Duplicates
	for _, d := range r.RuleDrops {
		total += d.Count
	}
	return total
}

// Difference returns raw count minus kept count, the figure the
// record-differences report surfaces.
func (r *EntityResult) Difference() int {
	return r.RowsRead - r.RowsKept
}

// RunSummary represents the outcome of a full pipeline run
type RunSummary struct {
	RunID         string
	Entities      []*EntityResult
	LoadAttempted bool
	LoadErr       error
	RowsLoaded    int64
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// NewRunSummary initializes a run summary
func NewRunSummary(runID string) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		StartTime: time.Now(),
	}
}

// Complete marks the run as complete and calculates duration
func (s *RunSummary) Complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// AddEntityResult incorporates an entity result into the summary
func (s *RunSummary) AddEntityResult(result *EntityResult) {
	s.Entities = append(s.Entities, result)
}

// CleanedAll reports whether every entity cleaned without a structural failure
func (s *RunSummary) CleanedAll() bool {
	if len(s.Entities) == 0 {
		return false
	}
	for _, e := range s.Entities {
		if !e.Success {
			return false
		}
	}
	return true
}

// FullSuccess reports whether every entity cleaned and the warehouse load committed
func (s *RunSummary) FullSuccess() bool {
	return s.CleanedAll() && s.LoadAttempted && s.LoadErr == nil
}
