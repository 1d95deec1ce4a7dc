// Package metrics aggregates case results and exports them for dashboards.
package metrics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// CaseMetrics is the metric record of a single evaluated case
type CaseMetrics struct {
	RunID      string    `json:"run_id"`
	File       string    `json:"file"`
	CaseName   string    `json:"case_name"`
	Check      string    `json:"check"`
	Outcome    string    `json:"outcome,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	DurationMs float64   `json:"duration_ms"`
	Passed     bool      `json:"passed"`
	Skipped    bool      `json:"skipped"`
	Errored    bool      `json:"errored"`
	Timestamp  time.Time `json:"timestamp"`
}

// AggregateMetrics summarises every recorded case
type AggregateMetrics struct {
	TotalCases      int64                      `json:"total_cases"`
	PassedCount     int64                      `json:"passed_count"`
	FailedCount     int64                      `json:"failed_count"`
	SkippedCount    int64                      `json:"skipped_count"`
	ErrorCount      int64                      `json:"error_count"`
	TotalDurationMs float64                    `json:"total_duration_ms"`
	MinDurationMs   float64                    `json:"min_duration_ms"`
	MaxDurationMs   float64                    `json:"max_duration_ms"`
	AvgDurationMs   float64                    `json:"avg_duration_ms"`
	ByKind          map[string]int64           `json:"by_kind"`
	ByCheck         map[string]*CheckAggregate `json:"by_check"`
}

// CheckAggregate holds the counts for one check type
type CheckAggregate struct {
	Check       string `json:"check"`
	TotalCases  int64  `json:"total_cases"`
	PassedCount int64  `json:"passed_count"`
	FailedCount int64  `json:"failed_count"`
}

func newAggregate() *AggregateMetrics {
	return &AggregateMetrics{
		ByKind:  make(map[string]int64),
		ByCheck: make(map[string]*CheckAggregate),
	}
}

// Exporter is the interface for metrics exporters
type Exporter interface {
	// Export exports metrics to the target destination
	Export(metrics *AggregateMetrics) error

	// ExportSingle exports a single case metric
	ExportSingle(metric *CaseMetrics) error

	// Close closes the exporter and flushes any buffered data
	Close() error
}

// Collector collects metrics from case runs
type Collector struct {
	mu        sync.Mutex
	metrics   []*CaseMetrics
	aggregate *AggregateMetrics
	exporters []Exporter
	// errs holds ExportSingle failures until the next Flush.
	errs []error
}

// NewCollector creates a new metrics collector
func NewCollector(exporters ...Exporter) *Collector {
	return &Collector{
		metrics:   make([]*CaseMetrics, 0),
		exporters: exporters,
		aggregate: newAggregate(),
	}
}

// RecordRun records every case of a run result.
func (c *Collector) RecordRun(result *runner.RunResult) {
	now := time.Now()
	for _, r := range result.Results {
		c.Record(&CaseMetrics{
			RunID:      result.ID,
			File:       result.File,
			CaseName:   r.Name,
			Check:      string(r.Check),
			Outcome:    string(r.Got),
			Kind:       string(r.Kind),
			DurationMs: float64(r.Duration.Microseconds()) / 1000,
			Passed:     r.Passed,
			Skipped:    r.Skipped,
			Errored:    r.Error != nil,
			Timestamp:  now,
		})
	}
}

// Record records a case metric
func (c *Collector) Record(m *CaseMetrics) {
	c.mu.Lock()
	c.metrics = append(c.metrics, m)
	c.aggregate.add(m)
	c.mu.Unlock()

	for _, exp := range c.exporters {
		if err := exp.ExportSingle(m); err != nil {
			c.mu.Lock()
			c.errs = append(c.errs, fmt.Errorf("exporting case %q: %w", m.CaseName, err))
			c.mu.Unlock()
		}
	}
}

func (a *AggregateMetrics) add(m *CaseMetrics) {
	a.TotalCases++

	switch {
	case m.Skipped:
		a.SkippedCount++
		return
	case m.Passed:
		a.PassedCount++
	default:
		a.FailedCount++
	}
	if m.Errored {
		a.ErrorCount++
	}
	if m.Kind != "" {
		a.ByKind[m.Kind]++
	}

	evaluated := a.PassedCount + a.FailedCount
	a.TotalDurationMs += m.DurationMs
	if evaluated == 1 {
		a.MinDurationMs = m.DurationMs
		a.MaxDurationMs = m.DurationMs
	} else {
		a.MinDurationMs = min(a.MinDurationMs, m.DurationMs)
		a.MaxDurationMs = max(a.MaxDurationMs, m.DurationMs)
	}
	a.AvgDurationMs = a.TotalDurationMs / float64(evaluated)

	ca, ok := a.ByCheck[m.Check]
	if !ok {
		ca = &CheckAggregate{Check: m.Check}
		a.ByCheck[m.Check] = ca
	}
	ca.TotalCases++
	if m.Passed {
		ca.PassedCount++
	} else {
		ca.FailedCount++
	}
}

// GetAggregate returns the aggregated metrics
func (c *Collector) GetAggregate() *AggregateMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aggregate
}

// Flush exports all aggregated metrics. The returned error also carries any
// per-case export failures recorded since the previous Flush.
func (c *Collector) Flush() error {
	c.mu.Lock()
	errs := c.errs
	c.errs = nil
	aggregate := c.aggregate
	c.mu.Unlock()

	for _, exp := range c.exporters {
		if err := exp.Export(aggregate); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes all exporters, even when one of them fails.
func (c *Collector) Close() error {
	var errs []error
	for _, exp := range c.exporters {
		if err := exp.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
