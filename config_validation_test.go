package propmacro

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseSchema_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		message string
	}{
		{
			name: "missing class name",
			content: `
classes:
  - properties: []
`,
			want:    ErrConfigValidation,
			message: "classes[0]: name is required",
		},
		{
			name: "duplicate class",
			content: `
classes:
  - name: A
  - name: A
`,
			want:    ErrConfigValidation,
			message: "duplicate class 'A'",
		},
		{
			name: "duplicate property",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: bool, path: a}
      - {name: x, macro: not, path: a}
`,
			want:    ErrConfigValidation,
			message: "duplicate property 'x'",
		},
		{
			name: "unknown macro",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: frobnicate, path: a}
`,
			want:    ErrUnknownMacro,
			message: "property 'x'",
		},
		{
			name: "missing path",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: alias}
`,
			want:    ErrConfigValidation,
			message: "path is required",
		},
		{
			name: "malformed path",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: sum, path: "a..b"}
`,
			want:    ErrConfigValidation,
			message: "empty segment",
		},
		{
			name: "missing key",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: mapBy, path: items}
`,
			want:    ErrConfigValidation,
			message: "key is required",
		},
		{
			name: "malformed paths entry",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: union, paths: [a, ""]}
`,
			want:    ErrConfigValidation,
			message: "paths[1] is required",
		},
		{
			name: "bad pattern",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: match, path: a, pattern: "("}
`,
			want:    ErrConfigValidation,
			message: "invalid pattern",
		},
		{
			name: "missing expression",
			content: `
classes:
  - name: A
    properties:
      - {name: x, macro: expr}
`,
			want:    ErrConfigValidation,
			message: "expression is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.content))
			assert.IsError(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
