package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/propmacro"
	"github.com/shibukawa/propmacro/macro"
)

var (
	keyFmt   = color.New(color.FgBlue, color.Bold).SprintFunc()
	classFmt = color.New(color.FgGreen, color.Bold).SprintfFunc()
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Data   string   `arg:"" help:"YAML or JSON data file" type:"existingfile"`
	Class  string   `short:"c" required:"" help:"Class name from the schema"`
	Field  []string `short:"f" help:"Properties to print (default: all virtual properties)"`
	All    bool     `short:"a" help:"Include plain members of the data document"`
	Format string   `help:"Output format" enum:"text,yaml" default:"text"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *EvalCmd) run(ctx *Context, w io.Writer) error {
	schema, err := propmacro.LoadSchema(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	logger := macro.StderrLogger
	if ctx.Quiet {
		logger = macro.DiscardLogger
	}

	registry, err := schema.Build(macro.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	class, err := registry.Class(cmd.Class)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Data)
	if err != nil {
		return err
	}

	obj := class.New(doc)

	keys, err := cmd.selectKeys(class, doc)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		fmt.Fprintln(w, classFmt("%s (%d properties)", class.Name(), len(keys)))
	}

	switch cmd.Format {
	case "yaml":
		values := make(map[string]any, len(keys))
		for _, key := range keys {
			values[key] = obj.Get(key)
		}

		out, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}

		_, err = w.Write(out)

		return err
	case "text", "":
		for _, key := range keys {
			fmt.Fprintf(w, "%s: %s\n", keyFmt(key), formatValue(obj.Get(key)))
		}

		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownFormat, cmd.Format)
}

func (cmd *EvalCmd) selectKeys(class *macro.Class, doc map[string]any) ([]string, error) {
	if len(cmd.Field) > 0 {
		for _, key := range cmd.Field {
			if _, ok := class.Property(key); !ok {
				if _, plain := doc[key]; !plain {
					return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, class.Name(), key)
				}
			}
		}

		return cmd.Field, nil
	}

	keys := class.Keys()
	if cmd.All {
		var plain []string

		for key := range doc {
			if _, ok := class.Property(key); !ok {
				plain = append(plain, key)
			}
		}

		slices.Sort(plain)
		keys = append(plain, keys...)
	}

	return keys, nil
}
