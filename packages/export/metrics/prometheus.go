package metrics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// PrometheusExporter writes metrics in the Prometheus text exposition format
type PrometheusExporter struct {
	mu        sync.RWMutex
	aggregate *AggregateMetrics
	writer    io.Writer
	filePath  string
	prefix    string
}

// PrometheusOption is a functional option for PrometheusExporter
type PrometheusOption func(*PrometheusExporter)

// WithPrometheusWriter sets the output writer for Prometheus metrics
func WithPrometheusWriter(w io.Writer) PrometheusOption {
	return func(p *PrometheusExporter) {
		p.writer = w
	}
}

// WithPrometheusFile writes the metrics to a file on every export
func WithPrometheusFile(path string) PrometheusOption {
	return func(p *PrometheusExporter) {
		p.filePath = path
	}
}

// WithPrometheusPrefix sets the metric name prefix
func WithPrometheusPrefix(prefix string) PrometheusOption {
	return func(p *PrometheusExporter) {
		p.prefix = prefix
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter
func NewPrometheusExporter(opts ...PrometheusOption) *PrometheusExporter {
	p := &PrometheusExporter{
		aggregate: newAggregate(),
		prefix:    "hitassert",
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Export writes the aggregated metrics
func (p *PrometheusExporter) Export(metrics *AggregateMetrics) error {
	p.mu.Lock()
	p.aggregate = metrics
	p.mu.Unlock()

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			return fmt.Errorf("failed to create metrics file: %w", err)
		}
		defer f.Close()
		if err := p.writeMetrics(f); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}

	if p.writer != nil {
		return p.writeMetrics(p.writer)
	}
	return nil
}

// ExportSingle is a no-op; Prometheus only exposes aggregates
func (p *PrometheusExporter) ExportSingle(metric *CaseMetrics) error {
	return nil
}

func (p *PrometheusExporter) writeMetrics(w io.Writer) error {
	var b strings.Builder
	now := time.Now().UnixMilli()
	a := p.aggregate

	counter := func(name, help string, value int64) {
		fmt.Fprintf(&b, "# HELP %s_%s %s\n", p.prefix, name, help)
		fmt.Fprintf(&b, "# TYPE %s_%s counter\n", p.prefix, name)
		fmt.Fprintf(&b, "%s_%s %d %d\n\n", p.prefix, name, value, now)
	}

	counter("cases_total", "Total number of cases", a.TotalCases)
	counter("cases_passed_total", "Cases whose outcome matched", a.PassedCount)
	counter("cases_failed_total", "Cases whose outcome did not match", a.FailedCount)
	counter("cases_skipped_total", "Cases that were skipped or filtered out", a.SkippedCount)
	counter("cases_errored_total", "Cases that could not be evaluated", a.ErrorCount)

	fmt.Fprintf(&b, "# HELP %s_case_duration_ms Case evaluation time in milliseconds\n", p.prefix)
	fmt.Fprintf(&b, "# TYPE %s_case_duration_ms gauge\n", p.prefix)
	fmt.Fprintf(&b, "%s_case_duration_ms{quantile=\"min\"} %.3f %d\n", p.prefix, a.MinDurationMs, now)
	fmt.Fprintf(&b, "%s_case_duration_ms{quantile=\"max\"} %.3f %d\n", p.prefix, a.MaxDurationMs, now)
	fmt.Fprintf(&b, "%s_case_duration_ms{quantile=\"avg\"} %.3f %d\n\n", p.prefix, a.AvgDurationMs, now)

	if len(a.ByKind) > 0 {
		fmt.Fprintf(&b, "# HELP %s_assertion_errors_total Assertion errors by kind\n", p.prefix)
		fmt.Fprintf(&b, "# TYPE %s_assertion_errors_total counter\n", p.prefix)
		for _, kind := range sortedKeys(a.ByKind) {
			fmt.Fprintf(&b, "%s_assertion_errors_total{kind=\"%s\"} %d %d\n", p.prefix, sanitizeLabel(kind), a.ByKind[kind], now)
		}
		fmt.Fprintln(&b)
	}

	if len(a.ByCheck) > 0 {
		fmt.Fprintf(&b, "# HELP %s_check_cases_total Evaluated cases per check\n", p.prefix)
		fmt.Fprintf(&b, "# TYPE %s_check_cases_total counter\n", p.prefix)
		for _, check := range sortedKeys(a.ByCheck) {
			ca := a.ByCheck[check]
			fmt.Fprintf(&b, "%s_check_cases_total{check=\"%s\",result=\"passed\"} %d %d\n", p.prefix, sanitizeLabel(check), ca.PassedCount, now)
			fmt.Fprintf(&b, "%s_check_cases_total{check=\"%s\",result=\"failed\"} %d %d\n", p.prefix, sanitizeLabel(check), ca.FailedCount, now)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sanitizeLabel makes a string safe for use as a Prometheus label value
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// Close is a no-op
func (p *PrometheusExporter) Close() error {
	return nil
}
