package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/cases"
	"github.com/abdul-hamid-achik/hitassert/packages/snapshot"
	"github.com/google/uuid"
)

const (
	// DefaultConcurrency is the default number of concurrent cases in parallel mode
	DefaultConcurrency = 5
)

type Runner struct {
	arrays *assertions.Arrays[any]
	paths  *assertions.Paths
	config *Config
}

type Config struct {
	Verbose     bool
	Bail        bool
	NameFilter  string
	TagsFilter  []string
	Parallel    bool
	Concurrency int
	// Snapshots compares the message of cases marked with snapshot. Nil
	// disables snapshot checks.
	Snapshots *snapshot.Manager
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	failures := assertions.StandardFailures()
	return &Runner{
		arrays: assertions.NewArrays[any](failures),
		paths:  assertions.NewPaths(failures),
		config: cfg,
	}
}

type RunResult struct {
	ID       string
	File     string
	Name     string
	Results  []*CaseResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
}

type CaseResult struct {
	Name        string
	Check       cases.Check
	Description string
	Tags        []string
	Passed      bool
	Skipped     bool
	SkipReason  string
	Duration    time.Duration
	Want        cases.Outcome
	Got         cases.Outcome
	Kind        assertions.Kind
	Message     string
	Actual      any
	Expected    any
	Error       error
}

func (r *Runner) RunFile(path string) (*RunResult, error) {
	file, err := cases.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return r.RunCases(file, filepath.Dir(path)), nil
}

// RunCases evaluates every case in file, resolving fixtures against baseDir.
func (r *Runner) RunCases(file *cases.File, baseDir string) *RunResult {
	start := time.Now()
	result := &RunResult{
		ID:   uuid.NewString(),
		File: file.Path,
		Name: file.Name,
	}

	hasOnly := false
	for _, c := range file.Cases {
		if c.Only {
			hasOnly = true
			break
		}
	}

	// One slot per case keeps results in file order whatever the mode.
	slots := make([]*CaseResult, len(file.Cases))
	var selected []int
	for i, c := range file.Cases {
		if !r.shouldRun(c, hasOnly) {
			slots[i] = skipped(c, "filtered out")
			continue
		}

		if c.Skip != "" {
			slots[i] = skipped(c, c.Skip)
			continue
		}

		selected = append(selected, i)
	}

	if r.config.Parallel && !r.config.Bail {
		r.runParallel(file, selected, slots, baseDir)
	} else {
		for _, i := range selected {
			slots[i] = r.runCase(file.Path, file.Cases[i], baseDir)
			if !slots[i].Passed && r.config.Bail {
				truncateAfter(slots, i)
				break
			}
		}
	}

	for _, caseResult := range slots {
		if caseResult == nil {
			continue
		}
		result.Results = append(result.Results, caseResult)
		switch {
		case caseResult.Skipped:
			result.Skipped++
		case caseResult.Passed:
			result.Passed++
		default:
			result.Failed++
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runParallel(file *cases.File, selected []int, slots []*CaseResult, baseDir string) {
	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, i := range selected {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, c *cases.Case) {
			defer wg.Done()
			defer func() { <-sem }()

			slots[idx] = r.runCase(file.Path, c, baseDir)
		}(i, file.Cases[i])
	}

	wg.Wait()
}

// truncateAfter clears every slot after idx so a bailed run reports nothing
// past the failing case.
func truncateAfter(slots []*CaseResult, idx int) {
	for i := idx + 1; i < len(slots); i++ {
		slots[i] = nil
	}
}

func skipped(c *cases.Case, reason string) *CaseResult {
	return &CaseResult{
		Name:       c.Name,
		Check:      c.Check,
		Tags:       c.Tags,
		Skipped:    true,
		SkipReason: reason,
	}
}

func (r *Runner) shouldRun(c *cases.Case, hasOnly bool) bool {
	if hasOnly && !c.Only {
		return false
	}

	if r.config.NameFilter != "" && !matchesPattern(c.Name, r.config.NameFilter) {
		return false
	}

	if len(r.config.TagsFilter) > 0 && !hasAnyTag(c.Tags, r.config.TagsFilter) {
		return false
	}

	return true
}

// runCase evaluates c and, when the case asks for it, compares its message
// with the stored snapshot.
func (r *Runner) runCase(path string, c *cases.Case, baseDir string) *CaseResult {
	result := r.RunCase(c, baseDir)
	if !c.Snapshot || r.config.Snapshots == nil || result.Error != nil {
		return result
	}

	snap := r.config.Snapshots.Compare(path, c.Name, result.Message)
	if !snap.Passed {
		result.Passed = false
		result.Error = fmt.Errorf("%s: stored %q, got %q", snap.Message, snap.Expected, snap.Actual)
	}
	return result
}

// RunCase evaluates a single case. The case passes when the outcome of its
// check matches the outcome it expects.
func (r *Runner) RunCase(c *cases.Case, baseDir string) *CaseResult {
	start := time.Now()
	result := &CaseResult{
		Name:        c.Name,
		Check:       c.Check,
		Description: c.Description,
		Tags:        c.Tags,
		Want:        c.Expect.Or(cases.OutcomePass),
	}

	actual, err := c.Actual.Resolve(baseDir)
	if err != nil {
		result.Error = fmt.Errorf("resolving actual: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	expected, err := c.Expected.Resolve(baseDir)
	if err != nil {
		result.Error = fmt.Errorf("resolving expected: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.Actual = operandValue(actual)
	result.Expected = operandValue(expected)

	err = r.check(c, actual, expected)
	result.Duration = time.Since(start)

	result.Got, result.Kind = classify(err)
	if result.Got == "" {
		result.Error = err
		return result
	}
	if err != nil {
		result.Message = err.Error()
	}

	result.Passed = result.Got == result.Want
	return result
}

func (r *Runner) check(c *cases.Case, actual, expected cases.Operand) error {
	info := assertions.NewInfo()
	if c.Description != "" {
		info = info.As("%s", c.Description)
	}

	if c.Check.IsPath() {
		actualPath, err := toPath(actual)
		if err != nil {
			return fmt.Errorf("actual: %w", err)
		}
		otherPath, err := toPath(expected)
		if err != nil {
			return fmt.Errorf("expected: %w", err)
		}

		switch c.Check {
		case cases.CheckPathEndsWithRaw:
			return r.paths.AssertEndsWithRaw(info, actualPath, otherPath)
		case cases.CheckPathEndsWith:
			return r.paths.AssertEndsWith(info, actualPath, otherPath)
		case cases.CheckPathStartsWith:
			return r.paths.AssertStartsWithRaw(info, actualPath, otherPath)
		}
	}

	actualSeq, err := toSequence(actual)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}
	sequence, err := toSequence(expected)
	if err != nil {
		return fmt.Errorf("expected: %w", err)
	}

	switch c.Check {
	case cases.CheckEndsWith:
		return r.arrays.AssertEndsWith(info, actualSeq, sequence)
	case cases.CheckStartsWith:
		return r.arrays.AssertStartsWith(info, actualSeq, sequence)
	default:
		return fmt.Errorf("unknown check %q", c.Check)
	}
}

// classify maps a comparator error onto a case outcome. An empty outcome
// means err did not come from the comparator.
func classify(err error) (cases.Outcome, assertions.Kind) {
	if err == nil {
		return cases.OutcomePass, ""
	}
	if errors.Is(err, assertions.ErrNullArgument) {
		return cases.OutcomeNullArgument, ""
	}
	if errors.Is(err, assertions.ErrInvalidArgument) {
		return cases.OutcomeInvalidArgument, ""
	}
	if ae, ok := assertions.AsAssertionError(err); ok {
		return cases.OutcomeFail, ae.Kind
	}
	return "", ""
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if len(pattern) > 1 && strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(name, pattern[1:len(pattern)-1])
	}

	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(name, pattern[1:])
	}

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}

func hasAnyTag(tags []string, filters []string) bool {
	for _, filter := range filters {
		for _, tag := range tags {
			if tag == filter {
				return true
			}
		}
	}
	return false
}
