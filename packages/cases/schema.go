package cases

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["cases"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "cases": {"type": "array", "items": {"$ref": "#/definitions/case"}}
  },
  "definitions": {
    "case": {
      "type": "object",
      "required": ["check"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "check": {"enum": ["endsWith", "startsWith", "pathEndsWith", "pathEndsWithRaw", "pathStartsWith"]},
        "description": {"type": "string"},
        "actual": {"$ref": "#/definitions/operand"},
        "expected": {"$ref": "#/definitions/operand"},
        "expect": {"enum": ["pass", "fail", "nullArgument", "invalidArgument"]},
        "tags": {"type": "array", "items": {"type": "string"}},
        "skip": {"type": "string"},
        "only": {"type": "boolean"},
        "snapshot": {"type": "boolean"}
      }
    },
    "operand": {
      "oneOf": [
        {"type": "null"},
        {"type": "array"},
        {"type": "string"},
        {"type": "number"},
        {"type": "boolean"},
        {
          "type": "object",
          "required": ["file"],
          "additionalProperties": false,
          "properties": {
            "file": {"type": "string"},
            "path": {"type": "string"}
          }
        }
      ]
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(fileSchema)

// ValidateFile checks a case file against the case file schema.
func ValidateFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(content)
}

// Validate checks raw case file content against the case file schema and
// returns one message per violation.
func Validate(input []byte) ([]string, error) {
	var doc any
	if err := yaml.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}
