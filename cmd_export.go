package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/WillyV3/todolist/internal/export"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json, csv, html, pdf)" default:"json" enum:"json,csv,html,pdf"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
	Search string `short:"s" help:"Only export tasks containing this text"`
}

func (c *ExportCmd) Run(app *App) error {
	data, err := export.NewExporter(app.Store).Export(c.Format, c.Search)
	if err != nil {
		return err
	}

	if c.Output == "" {
		if c.Format == "pdf" {
			return fmt.Errorf("pdf export needs --output")
		}
		_, err := app.Out.Write(data)
		return err
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	fmt.Fprintf(app.Out, "✓ Exported %s to %s\n", strings.ToUpper(c.Format), c.Output)
	return nil
}
