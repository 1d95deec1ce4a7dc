package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Runs     []string    `json:"runs"`
	Cases    []JSONCase  `json:"cases"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the run summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONCase represents a single case result
type JSONCase struct {
	Name        string   `json:"name"`
	File        string   `json:"file"`
	RunID       string   `json:"runId"`
	Check       string   `json:"check"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Passed      bool     `json:"passed"`
	Skipped     bool     `json:"skipped,omitempty"`
	SkipReason  string   `json:"skipReason,omitempty"`
	Duration    float64  `json:"duration"`
	Want        string   `json:"want,omitempty"`
	Got         string   `json:"got,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Actual      any      `json:"actual,omitempty"`
	Expected    any      `json:"expected,omitempty"`
	Message     string   `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// JSONFormatter formats case results as JSON
type JSONFormatter struct {
	writer  io.Writer
	runs    []string
	results []JSONCase
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		results: make([]JSONCase, 0),
		runs:    make([]string, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	f.runs = append(f.runs, result.ID)

	for _, r := range result.Results {
		c := JSONCase{
			Name:        r.Name,
			File:        result.File,
			RunID:       result.ID,
			Check:       string(r.Check),
			Description: r.Description,
			Tags:        r.Tags,
			Passed:      r.Passed,
			Skipped:     r.Skipped,
			Duration:    float64(r.Duration.Microseconds()) / 1000,
			Want:        string(r.Want),
			Got:         string(r.Got),
			Kind:        string(r.Kind),
			Actual:      r.Actual,
			Expected:    r.Expected,
			Message:     r.Message,
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			c.SkipReason = r.SkipReason
		}

		if r.Error != nil {
			c.Error = r.Error.Error()
		}

		f.results = append(f.results, c)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual case results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, c := range f.results {
		if c.Skipped {
			skipped++
		} else if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.results),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Runs:     f.runs,
		Cases:    f.results,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
