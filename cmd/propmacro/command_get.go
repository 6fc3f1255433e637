package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shibukawa/propmacro/propath"
)

// GetCmd represents the get command
type GetCmd struct {
	Data  string   `arg:"" help:"YAML or JSON data file" type:"existingfile"`
	Paths []string `arg:"" help:"Dotted paths to read"`
}

// Run executes the get command
func (cmd *GetCmd) Run(ctx *Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *GetCmd) run(ctx *Context, w io.Writer) error {
	doc, err := loadDocument(cmd.Data)
	if err != nil {
		return err
	}

	for _, path := range cmd.Paths {
		if _, err := propath.Parse(path); err != nil {
			return err
		}
	}

	values := propath.GetAll(doc, cmd.Paths...)

	for i, v := range values {
		if len(cmd.Paths) > 1 || ctx.Verbose {
			fmt.Fprintf(w, "%s: %s\n", keyFmt(cmd.Paths[i]), formatValue(v))
			continue
		}

		fmt.Fprintln(w, formatValue(v))
	}

	return nil
}
