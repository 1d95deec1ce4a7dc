// Package cases parses hitassert case files.
//
// A case file is YAML (or JSON) holding a list of cases. Each case names a
// check, an actual and an expected operand:
//
//	name: byte arrays
//	cases:
//	  - name: ends with tail
//	    check: endsWith
//	    actual: [6, 8, 10, 12]
//	    expected: [8, 10, 12]
//
// Operands may be inline lists, scalars, null, or a reference to a JSON
// fixture ({file: fixture.json, path: data.items}) queried with gjson.
package cases
