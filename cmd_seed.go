package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/WillyV3/todolist/internal/config"
)

// SeedCmd fills the list with sample tasks.
type SeedCmd struct {
	Force bool `help:"Add the samples without asking when tasks already exist"`
}

func (c *SeedCmd) Run(app *App) error {
	if n := app.Store.Len(); n > 0 && !c.Force {
		fmt.Fprintf(app.Out, "List already has %d tasks. Add samples anyway? (y/N): ", n)
		if !confirm(app.In) {
			fmt.Fprintln(app.Out, "Cancelled.")
			return nil
		}
	}

	added := 0
	for _, s := range sampleTasks(app.Store.Now()) {
		if err := app.Store.Add(s.Text, s.Date); err != nil {
			return fmt.Errorf("seed %q: %w", s.Text, err)
		}
		added++
	}

	fmt.Fprintf(app.Out, "✓ Added %d sample tasks\n", added)
	fmt.Fprintf(app.Out, "  Total tasks: %d\n", app.Store.Len())
	fmt.Fprintln(app.Out, "\nRun 'todolist' to view your tasks!")
	return nil
}

func confirm(in io.Reader) bool {
	if in == nil {
		return false
	}
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

// InitCmd writes a configuration file with the defaults.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (c *InitCmd) write(path string, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Write(path, config.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(out, "✓ Created config file: %s\n", path)
	return nil
}
