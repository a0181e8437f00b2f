package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/WillyV3/todolist/internal/config"
	"github.com/WillyV3/todolist/internal/kv"
	"github.com/WillyV3/todolist/internal/logging"
	"github.com/WillyV3/todolist/internal/metrics"
	"github.com/WillyV3/todolist/internal/todo"
)

// App is the state shared by every command: configuration, the opened
// backend and the task store on top of it.
type App struct {
	Config *config.Config
	Store  *todo.Store
	Log    *slog.Logger
	Out    io.Writer
	In     io.Reader

	backend kv.Store
	logFile *os.File
	metrics *http.Server
}

// openApp loads configuration and opens the store. When toFile is set the
// logger writes to the configured log file instead of stderr.
func openApp(configPath string, verbose, toFile bool, out io.Writer, in io.Reader) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	app := &App{Config: cfg, Out: out, In: in}

	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if toFile {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		app.logFile = f
		w = f
	}
	app.Log = logging.New(w, level)

	backend, err := kv.Open(cfg.KVOptions())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	app.backend = backend

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Addr != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		app.serveMetrics(cfg.Metrics.Addr, reg)
	}

	app.Store = todo.NewStore(backend,
		todo.WithKey(cfg.Storage.Key),
		todo.WithLogger(app.Log),
		todo.WithRecorder(rec),
	)
	app.Store.Load()
	app.Log.Debug("Store loaded", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key, "tasks", app.Store.Len())
	return app, nil
}

func (a *App) serveMetrics(addr string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	a.metrics = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.Log.Info("Serving metrics", "addr", addr)
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Warn("Metrics server stopped", "error", err)
		}
	}()
}

// Close releases the backend, the metrics listener and the log file.
func (a *App) Close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metrics.Shutdown(ctx)
		cancel()
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil && a.Log != nil {
			a.Log.Warn("Failed to close storage", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
