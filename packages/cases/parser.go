package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extensions lists the file suffixes recognised as case files.
var Extensions = []string{".hitassert.yaml", ".hitassert.yml", ".hitassert.json"}

// IsCaseFile reports whether path has a case file suffix. A bare suffix such
// as ".hitassert.yaml" names the config file, not a case file.
func IsCaseFile(path string) bool {
	base := filepath.Base(path)
	for _, ext := range Extensions {
		if len(base) > len(ext) && strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content, path)
}

func Parse(input []byte, filename string) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(input, &doc); err != nil {
		return nil, &ParseError{File: filename, Message: err.Error()}
	}

	file := &File{Path: filename}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &ParseError{File: filename, Message: "empty case file"}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{File: filename, Line: root.Line, Message: "case file must be a mapping"}
	}

	var casesNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "name":
			file.Name = value.Value
		case "cases":
			casesNode = value
		default:
			return nil, &ParseError{File: filename, Line: key.Line, Message: fmt.Sprintf("unknown key %q", key.Value)}
		}
	}

	if casesNode == nil {
		return nil, &ParseError{File: filename, Line: root.Line, Message: "missing cases"}
	}
	if casesNode.Kind != yaml.SequenceNode {
		return nil, &ParseError{File: filename, Line: casesNode.Line, Message: "cases must be a list"}
	}

	for i, item := range casesNode.Content {
		c := &Case{}
		if err := item.Decode(c); err != nil {
			return nil, &ParseError{File: filename, Line: item.Line, Message: err.Error()}
		}
		c.Line = item.Line
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if err := validateCase(c); err != nil {
			return nil, &ParseError{File: filename, Line: item.Line, Message: fmt.Sprintf("%s: %v", c.Name, err)}
		}
		file.Cases = append(file.Cases, c)
	}

	return file, nil
}

func validateCase(c *Case) error {
	if !c.Check.Valid() {
		return fmt.Errorf("unknown check %q", c.Check)
	}
	if !c.Expect.Valid() {
		return fmt.Errorf("unknown expect %q", c.Expect)
	}

	for _, side := range []struct {
		name    string
		operand Operand
	}{{"actual", c.Actual}, {"expected", c.Expected}} {
		switch {
		case c.Check.IsPath() && side.operand.Kind == OperandSequence:
			return fmt.Errorf("%s must be a path, got a list", side.name)
		case !c.Check.IsPath() && side.operand.Kind == OperandScalar:
			return fmt.Errorf("%s must be a list, got %v", side.name, side.operand.Scalar)
		}

		for i, v := range side.operand.Values {
			switch v.(type) {
			case []any, map[string]any, map[any]any:
				return fmt.Errorf("%s[%d] must be a scalar, got %T", side.name, i, v)
			}
		}
	}
	return nil
}
