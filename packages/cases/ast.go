package cases

import (
	"fmt"
	"slices"
)

type File struct {
	Path  string
	Name  string
	Cases []*Case
}

type Case struct {
	Name        string   `yaml:"name"`
	Check       Check    `yaml:"check"`
	Description string   `yaml:"description"`
	Actual      Operand  `yaml:"actual"`
	Expected    Operand  `yaml:"expected"`
	Expect      Outcome  `yaml:"expect"`
	Tags        []string `yaml:"tags"`
	Skip        string   `yaml:"skip"`
	Only        bool     `yaml:"only"`
	Snapshot    bool     `yaml:"snapshot"`
	Line        int      `yaml:"-"`
}

// Check names the comparator a case runs.
type Check string

const (
	CheckEndsWith        Check = "endsWith"
	CheckStartsWith      Check = "startsWith"
	CheckPathEndsWith    Check = "pathEndsWith"
	CheckPathEndsWithRaw Check = "pathEndsWithRaw"
	CheckPathStartsWith  Check = "pathStartsWith"
)

var allChecks = []Check{
	CheckEndsWith,
	CheckStartsWith,
	CheckPathEndsWith,
	CheckPathEndsWithRaw,
	CheckPathStartsWith,
}

func (c Check) Valid() bool {
	return slices.Contains(allChecks, c)
}

// IsPath reports whether the check compares paths rather than sequences.
func (c Check) IsPath() bool {
	switch c {
	case CheckPathEndsWith, CheckPathEndsWithRaw, CheckPathStartsWith:
		return true
	}
	return false
}

// Outcome is what a case expects its check to produce.
type Outcome string

const (
	OutcomePass            Outcome = "pass"
	OutcomeFail            Outcome = "fail"
	OutcomeNullArgument    Outcome = "nullArgument"
	OutcomeInvalidArgument Outcome = "invalidArgument"
)

func (o Outcome) Valid() bool {
	switch o {
	case "", OutcomePass, OutcomeFail, OutcomeNullArgument, OutcomeInvalidArgument:
		return true
	}
	return false
}

// Or returns o, or def when o is unset.
func (o Outcome) Or(def Outcome) Outcome {
	if o == "" {
		return def
	}
	return o
}

type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
