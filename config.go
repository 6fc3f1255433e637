package propmacro

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/propmacro/propath"
)

// DefaultSchemaFile is the schema file name used when none is given.
const DefaultSchemaFile = "propmacro.yaml"

// Schema represents a set of class declarations
type Schema struct {
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec declares a class and its virtual properties
type ClassSpec struct {
	Name       string         `yaml:"name"`
	Properties []PropertySpec `yaml:"properties"`
}

// PropertySpec declares one virtual property. Which fields are used depends on Macro.
type PropertySpec struct {
	Name  string   `yaml:"name"`
	Macro string   `yaml:"macro"`
	Path  string   `yaml:"path,omitempty"`
	Paths []string `yaml:"paths,omitempty"`
	Key   string   `yaml:"key,omitempty"`

	// Literal operand of equal/gt/gte/lt/lte and the optional filterBy value
	Value any `yaml:"value,omitempty"`

	// Fallback of reads. Lists and maps are copied on every read.
	Default any `yaml:"default,omitempty"`

	// Regular expression of match
	Pattern string `yaml:"pattern,omitempty"`

	// deprecatingAlias metadata
	Message string `yaml:"message,omitempty"`
	ID      string `yaml:"id,omitempty"`
	Until   string `yaml:"until,omitempty"`

	// sortBy direction
	Descending bool `yaml:"descending,omitempty"`

	// expr program and its variable to path bindings
	Expression string            `yaml:"expression,omitempty"`
	Vars       map[string]string `yaml:"vars,omitempty"`
}

// LoadSchema loads a schema from the specified file
func LoadSchema(schemaPath string) (*Schema, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	return ParseSchema(data)
}

// ParseSchema parses, validates and expands a schema document
func ParseSchema(data []byte) (*Schema, error) {
	if len(data) == 0 {
		return nil, ErrEmptyContent
	}

	// Parse YAML with strict mode to detect unknown fields
	var schema Schema

	err := yaml.UnmarshalWithOptions(data, &schema, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	if err := validateSchema(&schema); err != nil {
		return nil, err
	}

	expandSchemaEnvVars(&schema)

	return &schema, nil
}

// validateSchema validates the schema for common errors and inconsistencies
func validateSchema(schema *Schema) error {
	classNames := make(map[string]bool, len(schema.Classes))

	for i, class := range schema.Classes {
		if class.Name == "" {
			return fmt.Errorf("%w: classes[%d]: name is required", ErrConfigValidation, i)
		}

		if classNames[class.Name] {
			return fmt.Errorf("%w: duplicate class '%s'", ErrConfigValidation, class.Name)
		}

		classNames[class.Name] = true

		propNames := make(map[string]bool, len(class.Properties))

		for j, prop := range class.Properties {
			if prop.Name == "" {
				return fmt.Errorf("%w: class '%s': properties[%d]: name is required", ErrConfigValidation, class.Name, j)
			}

			if propNames[prop.Name] {
				return fmt.Errorf("%w: class '%s': duplicate property '%s'", ErrConfigValidation, class.Name, prop.Name)
			}

			propNames[prop.Name] = true

			if err := validateProperty(prop); err != nil {
				return fmt.Errorf("class '%s': property '%s': %w", class.Name, prop.Name, err)
			}
		}
	}

	return nil
}

func validateProperty(prop PropertySpec) error {
	factory, ok := factories[prop.Macro]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownMacro, prop.Macro)
	}

	switch factory.args {
	case argPath:
		if err := requirePath("path", prop.Path); err != nil {
			return err
		}
	case argPathKey:
		if err := requirePath("path", prop.Path); err != nil {
			return err
		}

		if err := requirePath("key", prop.Key); err != nil {
			return err
		}
	case argPaths:
		for i, p := range prop.Paths {
			if err := requirePath(fmt.Sprintf("paths[%d]", i), p); err != nil {
				return err
			}
		}
	case argPattern:
		if err := requirePath("path", prop.Path); err != nil {
			return err
		}

		if _, err := regexp.Compile(prop.Pattern); err != nil {
			return fmt.Errorf("%w: invalid pattern: %w", ErrConfigValidation, err)
		}
	case argExpression:
		if prop.Expression == "" {
			return fmt.Errorf("%w: expression is required", ErrConfigValidation)
		}

		for name, p := range prop.Vars {
			if err := requirePath("vars."+name, p); err != nil {
				return err
			}
		}
	}

	return nil
}

func requirePath(field, path string) error {
	if path == "" {
		return fmt.Errorf("%w: %s is required", ErrConfigValidation, field)
	}

	if _, err := propath.Parse(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigValidation, field, err)
	}

	return nil
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// loadEnvFiles loads environment variables from .env files
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandSchemaEnvVars expands environment variables in literal values and messages
func expandSchemaEnvVars(schema *Schema) {
	for i := range schema.Classes {
		props := schema.Classes[i].Properties
		for j := range props {
			if s, ok := props[j].Value.(string); ok {
				props[j].Value = expandEnvVars(s)
			}

			if s, ok := props[j].Default.(string); ok {
				props[j].Default = expandEnvVars(s)
			}

			props[j].Message = expandEnvVars(props[j].Message)
		}
	}
}
