package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/cases"
	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *runner.RunResult {
	return &runner.RunResult{
		ID:       "run-1",
		File:     "arrays.hitassert.yaml",
		Name:     "byte arrays",
		Duration: 3 * time.Millisecond,
		Passed:   1,
		Failed:   2,
		Skipped:  1,
		Results: []*runner.CaseResult{
			{Name: "tail", Check: cases.CheckEndsWith, Passed: true, Want: cases.OutcomePass, Got: cases.OutcomePass},
			{
				Name:     "wrong tail",
				Check:    cases.CheckEndsWith,
				Want:     cases.OutcomePass,
				Got:      cases.OutcomeFail,
				Kind:     assertions.KindDoesNotEndWith,
				Actual:   []any{6, 8, 10, 12},
				Expected: []any{20, 22},
				Message:  "\nExpecting:\n  <[6, 8, 10, 12]>\nto end with:\n  <[20, 22]>\n",
			},
			{Name: "broken fixture", Check: cases.CheckEndsWith, Want: cases.OutcomePass, Error: errors.New("resolving actual: missing")},
			{Name: "later", Check: cases.CheckStartsWith, Skipped: true, SkipReason: "not ready"},
		},
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "console", "json", "JUnit", "tap"} {
		f, err := New(name, Options{Writer: &bytes.Buffer{}, NoColor: true})
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := New("html", Options{})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatHeader("v1.0.0")
	f.FormatResult(sampleResult())
	f.FormatError(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "hitassert v1.0.0")
	assert.Contains(t, out, "Running: byte arrays (arrays.hitassert.yaml)")
	assert.Contains(t, out, "✓ tail")
	assert.Contains(t, out, "✗ wrong tail")
	assert.Contains(t, out, "expected pass, got fail")
	assert.Contains(t, out, "to end with:")
	assert.Contains(t, out, "x broken fixture (resolving actual: missing)")
	assert.Contains(t, out, "- later (not ready)")
	assert.Contains(t, out, "1 passed, 2 failed, 1 skipped, 4 total")
	assert.Contains(t, out, "Error: boom")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatResult(sampleResult())
	require.NoError(t, f.Flush(time.Second))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, JSONSummary{Total: 4, Passed: 1, Failed: 2, Skipped: 1}, out.Summary)
	assert.Equal(t, []string{"run-1"}, out.Runs)
	require.Len(t, out.Cases, 4)
	assert.Equal(t, "does-not-end-with", out.Cases[1].Kind)
	assert.Equal(t, "fail", out.Cases[1].Got)
	assert.Equal(t, "resolving actual: missing", out.Cases[2].Error)
	assert.Equal(t, "not ready", out.Cases[3].SkipReason)
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	f.FormatResult(sampleResult())
	require.NoError(t, f.Flush(time.Second))

	assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))
	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	assert.Equal(t, 1, suites.Skipped)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "byte arrays", suite.Name)
	assert.Equal(t, "run-1", suite.ID)
	require.NotNil(t, suite.TestCases[1].Failure)
	assert.Contains(t, suite.TestCases[1].Failure.Message, "expected pass, got fail (does-not-end-with)")
	assert.NotNil(t, suite.TestCases[2].Error)
	assert.NotNil(t, suite.TestCases[3].Skipped)
}

func TestTAPFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))

	f.FormatResult(sampleResult())
	require.NoError(t, f.Flush(time.Second))

	out := buf.String()
	assert.Contains(t, out, "TAP version 13\n1..4\n")
	assert.Contains(t, out, "ok 1 - tail\n")
	assert.Contains(t, out, "not ok 2 - wrong tail\n")
	assert.Contains(t, out, "  failures:\n")
	assert.Contains(t, out, "not ok 3 - broken fixture\n")
	assert.Contains(t, out, "ok 4 - later # SKIP not ready\n")
}
