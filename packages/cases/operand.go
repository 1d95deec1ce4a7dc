package cases

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

type OperandKind int

const (
	OperandNull OperandKind = iota
	OperandSequence
	OperandScalar
	OperandSource
)

func (k OperandKind) String() string {
	switch k {
	case OperandNull:
		return "null"
	case OperandSequence:
		return "list"
	case OperandScalar:
		return "scalar"
	case OperandSource:
		return "fixture"
	default:
		return "unknown"
	}
}

// Operand is one side of a case. The zero value is null, which is also what
// an absent or explicit null key decodes to.
type Operand struct {
	Kind   OperandKind
	Values []any
	Scalar any
	Source *Source
}

// Source points at a value inside a JSON fixture.
type Source struct {
	File string `yaml:"file"`
	Path string `yaml:"path"`
}

func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			var v any
			if err := child.Decode(&v); err != nil {
				return err
			}
			values = append(values, v)
		}
		*o = Operand{Kind: OperandSequence, Values: values}
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*o = Operand{}
			return nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		*o = Operand{Kind: OperandScalar, Scalar: v}
	case yaml.MappingNode:
		var src Source
		if err := node.Decode(&src); err != nil {
			return err
		}
		if src.File == "" {
			return fmt.Errorf("line %d: fixture operand requires a file", node.Line)
		}
		*o = Operand{Kind: OperandSource, Source: &src}
	default:
		return fmt.Errorf("line %d: unsupported operand", node.Line)
	}
	return nil
}

// Text returns the scalar rendered as a string.
func (o Operand) Text() string {
	if o.Scalar == nil {
		return ""
	}
	return fmt.Sprintf("%v", o.Scalar)
}

// Resolve loads fixture operands relative to baseDir. Other kinds are
// returned unchanged.
func (o Operand) Resolve(baseDir string) (Operand, error) {
	if o.Kind != OperandSource {
		return o, nil
	}

	fixturePath := o.Source.File
	if !filepath.IsAbs(fixturePath) && baseDir != "" {
		fixturePath = filepath.Join(baseDir, fixturePath)
	}
	if err := validatePathWithinBase(fixturePath, baseDir); err != nil {
		return Operand{}, err
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return Operand{}, fmt.Errorf("failed to read fixture: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Operand{}, fmt.Errorf("fixture %s is not valid JSON", o.Source.File)
	}

	result := gjson.ParseBytes(data)
	if o.Source.Path != "" {
		result = result.Get(convertBracketNotation(o.Source.Path))
	}

	switch {
	case !result.Exists(), result.Type == gjson.Null:
		return Operand{}, nil
	case result.IsArray():
		items := result.Array()
		values := make([]any, len(items))
		for i, item := range items {
			values[i] = fixtureValue(item)
		}
		return Operand{Kind: OperandSequence, Values: values}, nil
	default:
		return Operand{Kind: OperandScalar, Scalar: result.Value()}, nil
	}
}

// fixtureValue reads integral JSON numbers as integers so large values keep
// their precision.
func fixtureValue(item gjson.Result) any {
	if item.Type != gjson.Number || strings.ContainsAny(item.Raw, ".eE") {
		return item.Value()
	}
	if !strings.HasPrefix(item.Raw, "-") {
		if u := item.Uint(); u > math.MaxInt64 {
			return u
		}
	}
	return item.Int()
}

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	result := bracketIndex.ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(result, ".")
}

// validatePathWithinBase checks that the resolved path stays within the base directory
func validatePathWithinBase(path, baseDir string) error {
	if baseDir == "" {
		return nil
	}

	cleanBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if !strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator)) && cleanPath != cleanBase {
		return fmt.Errorf("path traversal detected: %s is outside allowed directory %s", path, baseDir)
	}

	return nil
}
