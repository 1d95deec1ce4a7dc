package metrics

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"
)

// JSONExporter writes a single JSON report when the collector flushes.
// Cases are kept as they are recorded so the report can break them down by
// case file.
type JSONExporter struct {
	writer   io.Writer
	filePath string
	pretty   bool
	cases    []*CaseMetrics
	started  time.Time
}

// JSONOption configures a JSONExporter
type JSONOption func(*JSONExporter)

// WithJSONWriter writes the report to w
func WithJSONWriter(w io.Writer) JSONOption {
	return func(j *JSONExporter) {
		j.writer = w
	}
}

// WithJSONFile writes the report to path, replacing any previous report
func WithJSONFile(path string) JSONOption {
	return func(j *JSONExporter) {
		j.filePath = path
	}
}

// WithJSONPretty toggles indentation
func WithJSONPretty(pretty bool) JSONOption {
	return func(j *JSONExporter) {
		j.pretty = pretty
	}
}

func NewJSONExporter(opts ...JSONOption) *JSONExporter {
	j := &JSONExporter{
		started: time.Now(),
		pretty:  true,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// JSONReport is the document written by JSONExporter.
type JSONReport struct {
	Metadata JSONMetadata      `json:"metadata"`
	Summary  *AggregateMetrics `json:"summary"`
	Files    []*FileSummary    `json:"files"`
	Cases    []*CaseMetrics    `json:"cases"`
}

type JSONMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	StartedAt   time.Time `json:"started_at"`
	DurationMs  float64   `json:"duration_ms"`
	RunIDs      []string  `json:"run_ids"`
}

// FileSummary counts the cases of one case file across every run recorded
// for it.
type FileSummary struct {
	File         string  `json:"file"`
	Runs         int     `json:"runs"`
	TotalCases   int64   `json:"total_cases"`
	PassedCount  int64   `json:"passed_count"`
	FailedCount  int64   `json:"failed_count"`
	SkippedCount int64   `json:"skipped_count"`
	DurationMs   float64 `json:"duration_ms"`
}

// Report assembles the document Export would write for summary.
func (j *JSONExporter) Report(summary *AggregateMetrics) *JSONReport {
	now := time.Now()
	report := &JSONReport{
		Metadata: JSONMetadata{
			GeneratedAt: now.UTC(),
			StartedAt:   j.started.UTC(),
			DurationMs:  float64(now.Sub(j.started).Microseconds()) / 1000,
			RunIDs:      []string{},
		},
		Summary: summary,
		Files:   []*FileSummary{},
		Cases:   j.cases,
	}
	if report.Cases == nil {
		report.Cases = []*CaseMetrics{}
	}

	byFile := make(map[string]*FileSummary)
	seenRuns := make(map[string]bool)
	for _, m := range j.cases {
		fs, ok := byFile[m.File]
		if !ok {
			fs = &FileSummary{File: m.File}
			byFile[m.File] = fs
			report.Files = append(report.Files, fs)
		}
		if !seenRuns[m.RunID] {
			seenRuns[m.RunID] = true
			report.Metadata.RunIDs = append(report.Metadata.RunIDs, m.RunID)
			fs.Runs++
		}

		fs.TotalCases++
		fs.DurationMs += m.DurationMs
		switch {
		case m.Skipped:
			fs.SkippedCount++
		case m.Passed:
			fs.PassedCount++
		default:
			fs.FailedCount++
		}
	}

	slices.SortFunc(report.Files, func(a, b *FileSummary) int {
		return cmp.Compare(a.File, b.File)
	})
	return report
}

// Export writes the report to the configured file and writer.
func (j *JSONExporter) Export(summary *AggregateMetrics) (err error) {
	var dests []io.Writer
	if j.filePath != "" {
		f, ferr := os.Create(j.filePath)
		if ferr != nil {
			return fmt.Errorf("failed to create metrics file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close metrics file: %w", cerr)
			}
		}()
		dests = append(dests, f)
	}
	if j.writer != nil {
		dests = append(dests, j.writer)
	}
	if len(dests) == 0 {
		return nil
	}

	enc := json.NewEncoder(io.MultiWriter(dests...))
	if j.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(j.Report(summary)); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// ExportSingle buffers m for the next report.
func (j *JSONExporter) ExportSingle(m *CaseMetrics) error {
	j.cases = append(j.cases, m)
	return nil
}

func (j *JSONExporter) Close() error {
	return nil
}
