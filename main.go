package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/WillyV3/todolist/internal/config"
)

const version = "2.0.0"

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Tui    TuiCmd    `cmd:"" default:"withargs" help:"Open the interactive task list (default)"`
	Add    AddCmd    `cmd:"" help:"Add a task"`
	List   ListCmd   `cmd:"" help:"List tasks, optionally filtered by a search term"`
	Edit   EditCmd   `cmd:"" help:"Replace the text and date of a task"`
	Delete DeleteCmd `cmd:"" help:"Delete a task"`
	Export ExportCmd `cmd:"" help:"Export tasks as json, csv, html or pdf"`
	Seed   SeedCmd   `cmd:"" help:"Fill the list with sample tasks"`
	Init   InitCmd   `cmd:"" help:"Write a configuration file with the defaults"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stdin, os.Exit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, in io.Reader, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("todolist"),
		kong.Description("A small task list with due dates and search."),
		kong.UsageOnError(),
		kong.Writers(out, out),
		kong.Exit(exit),
		kong.Vars{"version": version},
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config == "" {
		cli.Config = config.DefaultPath()
	}

	// init must work before a usable configuration exists.
	if kctx.Command() == "init" {
		return cli.Init.write(cli.Config, out)
	}

	app, err := openApp(cli.Config, cli.Verbose, kctx.Command() == "tui", out, in)
	if err != nil {
		return err
	}
	defer app.Close()

	return kctx.Run(app)
}
