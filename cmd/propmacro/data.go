package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// loadDocument reads a YAML or JSON mapping document.
func loadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	if doc == nil {
		return map[string]any{}, nil
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotMap, path)
	}

	return m, nil
}

// parseScalar interprets a command line value with YAML rules, so "42" is a
// number and "[a, b]" a list. Unparsable input stays a string.
func parseScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}

	return v
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	}

	out, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(trimNewline(out))
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}

	return b
}
