package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/shibukawa/propmacro"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// CLI represents the command-line interface
var CLI struct {
	Config   string      `help:"Schema file path" default:"propmacro.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate the properties of a class against a data file"`
	Get      GetCmd      `cmd:"" help:"Read dotted paths from a data file"`
	Set      SetCmd      `cmd:"" help:"Assign a value at a dotted path of a data file"`
	Validate ValidateCmd `cmd:"" help:"Validate the schema file"`
	Macros   MacrosCmd   `cmd:"" help:"List macros usable in a schema"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("propmacro v0.1.0")
	return nil
}

// MacrosCmd represents the macros command
type MacrosCmd struct{}

// Run executes the macros command
func (cmd *MacrosCmd) Run() error {
	for _, name := range propmacro.MacroNames() {
		fmt.Println(name)
	}

	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("propmacro"),
		kong.Description("Computed properties over YAML and JSON documents"),
	)

	// Create context with config path
	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
