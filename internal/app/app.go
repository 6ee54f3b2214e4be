// Package app wires configuration, logging, the reminder store and the
// service into the reminders command-line application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"locationreminders/internal/codec"
	"locationreminders/internal/config"
	"locationreminders/internal/logger"
	"locationreminders/internal/repository"
	"locationreminders/internal/repository/memory"
	"locationreminders/internal/repository/sqlite"
	"locationreminders/internal/service"
)

// Options holds the process streams. Zero values mean the os defaults.
type Options struct {
	Stdout io.Writer
	Stdin  io.Reader
	Stderr io.Writer
}

// runtime is the per-invocation state shared by Before, the command
// actions and After.
type runtime struct {
	opts      Options
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	logCloser io.Closer
	repo      repository.ReminderRepository
	svc       *service.ReminderService
}

// NewApp builds the reminders CLI
func NewApp(opts Options) *cli.App {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	rt := &runtime{opts: opts}

	return &cli.App{
		Name:      "reminders",
		Usage:     "Store and query location reminders",
		UsageText: "reminders [global options] command [command options] [arguments...]",
		Writer:    opts.Stdout,
		ErrWriter: opts.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file `PATH` (default: search standard locations)",
				EnvVars: []string{config.EnvConfigPath},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "store backend: sqlite or memory",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database `PATH` (\":memory:\" for a throwaway store)",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "snapshot `FILE` for the memory backend (.json or .yaml)",
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Usage: "log level: DEBUG, INFO, WARN, ERROR",
			},
		},
		Before:   rt.before,
		After:    rt.after,
		Commands: rt.commands(),
	}
}

func (rt *runtime) before(c *cli.Context) error {
	var err error
	if p := c.String("config"); p != "" {
		rt.cfg, rt.cfgPath, err = config.LoadFromPath(p)
	} else {
		rt.cfg, rt.cfgPath, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := rt.cfg.Apply(config.Overrides{
		Backend:  c.String("backend"),
		Path:     c.String("db"),
		Snapshot: c.String("snapshot"),
		LogLevel: c.String("verbosity"),
	}); err != nil {
		return err
	}

	rt.logger, rt.logCloser, err = logger.New(logger.Options{
		Verbosity: rt.cfg.Log.Level,
		File:      rt.cfg.Log.File,
		Writer:    rt.opts.Stderr,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(rt.logger)

	rt.logger.Debug("configuration loaded", "path", rt.cfgPath, "summary", rt.cfg.Summary())
	return nil
}

func (rt *runtime) after(c *cli.Context) error {
	var firstErr error
	if rt.repo != nil {
		if err := rt.repo.Close(); err != nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
		rt.repo = nil
		rt.svc = nil
	}
	if rt.logCloser != nil {
		if err := rt.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		rt.logCloser = nil
	}
	return firstErr
}

// service opens the configured store on first use
func (rt *runtime) service() (*service.ReminderService, error) {
	if rt.svc != nil {
		return rt.svc, nil
	}

	repo, err := openRepository(rt.cfg, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.repo = repo

	bus := service.NewEventBus()
	bus.Subscribe(func(e service.Event) {
		rt.logger.Debug("event", "type", e.Type)
	})
	rt.svc = service.NewReminderService(repo, bus, rt.logger)
	return rt.svc, nil
}

func openRepository(cfg *config.Config, l *slog.Logger) (repository.ReminderRepository, error) {
	switch cfg.Database.Backend {
	case config.BackendMemory:
		opts := []memory.Option{memory.WithLogger(l)}
		if cfg.Database.Snapshot != "" {
			c, err := codec.ForPath(cfg.Database.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("snapshot: %w", err)
			}
			opts = append(opts, memory.WithSnapshot(cfg.Database.Snapshot, c))
		}
		repo, err := memory.New(opts...)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.BackendSQLite:
		opts := []sqlite.Option{sqlite.WithLogger(l)}
		if cfg.Database.BusyTimeout != nil {
			opts = append(opts, sqlite.WithBusyTimeout(cfg.Database.BusyTimeout.Duration()))
		}
		repo, err := sqlite.New(cfg.Database.Path, opts...)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}
