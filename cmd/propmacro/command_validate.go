package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/propmacro"
	"github.com/shibukawa/propmacro/macro"
)

// ValidateCmd represents the validate command
type ValidateCmd struct{}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *ValidateCmd) run(ctx *Context, w io.Writer) error {
	schema, err := propmacro.LoadSchema(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	registry, err := schema.Build(macro.WithLogger(macro.DiscardLogger))
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	if ctx.Quiet {
		return nil
	}

	for _, name := range registry.Names() {
		class, err := registry.Class(name)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(w, "✓ %s", name)
		fmt.Fprintf(w, " (%d properties)\n", len(class.Keys()))

		if ctx.Verbose {
			for _, key := range class.Keys() {
				def, _ := class.Property(key)

				mode := "rw"
				if def.ReadOnly() {
					mode = "ro"
				}

				fmt.Fprintf(w, "    %s [%s]\n", key, mode)
			}
		}
	}

	return nil
}
