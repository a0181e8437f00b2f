package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WillyV3/todolist/internal/tui"
	"github.com/WillyV3/todolist/internal/watch"
)

type TuiCmd struct {
	Watch bool `short:"w" help:"Reload when the task file changes on disk"`
}

func (c *TuiCmd) Run(app *App) error {
	opts := []tui.Option{tui.WithLogger(app.Log)}

	if c.Watch {
		app.Config.Watch = true
	}
	if path := app.Config.WatchPath(); path != "" {
		w, err := watch.New(path, app.Log)
		if err != nil {
			app.Log.Warn("File watching disabled", "error", err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)
			opts = append(opts, tui.WithChanges(w.Changes()))
		}
	}

	p := tea.NewProgram(tui.New(app.Store, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
