package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/WillyV3/todolist/internal/todo"
)

var errNoTask = errors.New("no such task")

type AddCmd struct {
	Text []string `arg:"" help:"Task text (3-255 characters)"`
	Date string   `short:"d" help:"Due date as YYYY-MM-DD"`
}

func (c *AddCmd) Run(app *App) error {
	if err := app.Store.Add(strings.Join(c.Text, " "), c.Date); err != nil {
		return err
	}
	tasks := app.Store.Tasks()
	added := tasks[len(tasks)-1]
	fmt.Fprintf(app.Out, "✓ Added %d: %s\n", added.ID, added.Text)
	return nil
}

type ListCmd struct {
	Search string `short:"s" help:"Only show tasks containing this text (2+ characters)"`
}

func (c *ListCmd) Run(app *App) error {
	tasks := app.Store.FilteredView(c.Search)
	if len(tasks) == 0 {
		fmt.Fprintln(app.Out, "No tasks.")
		return nil
	}

	now := app.Store.Now()
	for _, t := range tasks {
		line := fmt.Sprintf("%d  %s", t.ID, todo.Printable(t.Text))
		if t.HasDate() {
			line += "  " + t.Date
			if t.Overdue(now) {
				line += " (overdue)"
			} else if t.DueToday(now) {
				line += " (today)"
			}
		}
		fmt.Fprintln(app.Out, line)
	}
	return nil
}

type EditCmd struct {
	ID   int64    `arg:"" help:"Task id"`
	Text []string `arg:"" help:"New task text"`
	Date string   `short:"d" help:"New due date as YYYY-MM-DD (empty clears it)"`
}

func (c *EditCmd) Run(app *App) error {
	if _, ok := app.Store.Get(c.ID); !ok {
		return fmt.Errorf("%w: %d", errNoTask, c.ID)
	}
	app.Store.EnterEditMode(c.ID)
	app.Store.SaveEdit(c.ID, strings.Join(c.Text, " "), c.Date)
	fmt.Fprintf(app.Out, "✓ Updated %d\n", c.ID)
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"Task id"`
}

func (c *DeleteCmd) Run(app *App) error {
	if _, ok := app.Store.Get(c.ID); !ok {
		return fmt.Errorf("%w: %d", errNoTask, c.ID)
	}
	app.Store.Delete(c.ID)
	fmt.Fprintf(app.Out, "✓ Deleted %d\n", c.ID)
	return nil
}
