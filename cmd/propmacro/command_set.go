package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/propmacro/propath"
)

// SetCmd represents the set command
type SetCmd struct {
	Data  string `arg:"" help:"YAML or JSON data file" type:"existingfile"`
	Path  string `arg:"" help:"Dotted path to assign"`
	Value string `arg:"" help:"Value, interpreted as YAML"`
	Write bool   `short:"w" help:"Write result to the data file instead of stdout"`
}

// Run executes the set command
func (cmd *SetCmd) Run(ctx *Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *SetCmd) run(ctx *Context, w io.Writer) error {
	doc, err := loadDocument(cmd.Data)
	if err != nil {
		return err
	}

	if err := propath.Set(doc, cmd.Path, parseScalar(cmd.Value)); err != nil {
		return err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if !cmd.Write {
		_, err = w.Write(out)
		return err
	}

	info, err := os.Stat(cmd.Data)
	if err != nil {
		return fmt.Errorf("failed to stat data file: %w", err)
	}

	if err := os.WriteFile(cmd.Data, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(w, "Updated %s: %s\n", cmd.Data, cmd.Path)
	}

	return nil
}
