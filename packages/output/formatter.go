package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// Options configure New.
type Options struct {
	Writer  io.Writer
	Verbose bool
	NoColor bool
}

// New returns the formatter registered under name. An empty name selects the
// console formatter.
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(name) {
	case "json":
		jsonOpts := []JSONOption{}
		if opts.Writer != nil {
			jsonOpts = append(jsonOpts, JSONWithWriter(opts.Writer))
		}
		return NewJSONFormatter(jsonOpts...), nil
	case "junit":
		junitOpts := []JUnitOption{}
		if opts.Writer != nil {
			junitOpts = append(junitOpts, JUnitWithWriter(opts.Writer))
		}
		return NewJUnitFormatter(junitOpts...), nil
	case "tap":
		tapOpts := []TAPOption{}
		if opts.Writer != nil {
			tapOpts = append(tapOpts, TAPWithWriter(opts.Writer))
		}
		return NewTAPFormatter(tapOpts...), nil
	case "", "console":
		consoleOpts := []ConsoleOption{
			WithVerbose(opts.Verbose),
			WithNoColor(opts.NoColor),
		}
		if opts.Writer != nil {
			consoleOpts = append(consoleOpts, WithWriter(opts.Writer))
		}
		return NewConsoleFormatter(consoleOpts...), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use console, json, junit or tap)", name)
	}
}

// failureSummary renders why a case did not pass on a single line.
func failureSummary(r *runner.CaseResult) string {
	if r.Error != nil {
		return r.Error.Error()
	}
	msg := fmt.Sprintf("%s: expected %s, got %s", r.Check, r.Want, r.Got)
	if r.Kind != "" {
		msg += " (" + string(r.Kind) + ")"
	}
	return msg
}
